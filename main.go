package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"bplusdb/table"
)

var errMissingFilename = errors.New("Must supply a database filename.")

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bplusdb <database-file>",
		Short: "A disk-backed B+tree key/value store with a SQLite-tutorial-style REPL",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errMissingFilename
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer table.RecoverFatal(func(fatal error) {
				logrus.WithError(fatal).Fatal("unrecoverable storage engine error")
			})

			db, openErr := table.Open(afero.NewOsFs(), args[0])
			if openErr != nil {
				return openErr
			}
			defer func() {
				if closeErr := db.Close(); err == nil {
					err = closeErr
				}
			}()

			return runRepl(cmd.InOrStdin(), db)
		},
	}
	cmd.SetArgs(os.Args[1:])
	return cmd
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errMissingFilename) {
			fmt.Println(errMissingFilename.Error())
			os.Exit(1)
		}
		logrus.WithError(err).Error("exiting")
		os.Exit(1)
	}
}
