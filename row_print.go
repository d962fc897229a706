package main

import (
	"fmt"

	"bplusdb/table"
)

// printRow writes row in "(id, username, email)" form.
func printRow(row table.Row) {
	fmt.Printf("(%d, %s, %s)\n", row.ID, row.Username, row.Email)
}
