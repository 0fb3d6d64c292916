package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/reoring/webmanifest/jsonschema"
)

func schemaCmd() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON Schema of the recognized manifest members",
		Action: func(_ context.Context, cmd *cli.Command) error {
			data, err := jsonschema.MarshalIndent()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.Root().Writer, "%s\n", data)
			return err
		},
	}
}
