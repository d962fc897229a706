package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"bplusdb/table"
)

func printPrompt() {
	fmt.Print("db > ")
}

func readInput(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// runRepl reads lines from r until EOF or ".exit", dispatching each one as
// a meta-command or a statement against db. It returns nil on a clean
// ".exit" or EOF.
func runRepl(r io.Reader, db *table.Database) error {
	reader := bufio.NewReader(r)
	for {
		printPrompt()
		line, err := readInput(reader)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if line == ".exit" {
				return nil
			}
			if doMetaCommand(line, db) == MetaCommandUnrecognizedCommand {
				fmt.Printf("Unrecognized command '%s'\n", line)
			}
			continue
		}

		var stmt Statement
		switch prepareStatement(line, &stmt) {
		case PrepareSuccess:
			// fall through to execution below
		case PrepareNegativeID:
			fmt.Println("ID must be positive.")
			continue
		case PrepareStringTooLong:
			fmt.Println("String is too long.")
			continue
		case PrepareSyntaxError:
			fmt.Println("Syntax error. Could not parse statement.")
			continue
		case PrepareUnrecognizedStatement:
			fmt.Printf("Unrecognized keyword at start of '%s'.\n", line)
			continue
		}

		result, err := executeStatement(db, &stmt)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		switch result {
		case ExecuteSuccess:
			fmt.Println("Executed.")
		case ExecuteDuplicateKey:
			fmt.Println("Error: Duplicate key.")
		}
	}
}
