package cli

import (
	"encoding/json"
	"fmt"
)

// errorOutput is the machine-readable failure shape for json format.
type errorOutput struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

// outputError normalizes error emission across commands: a json object on
// stdout in json format, an explanatory line on stderr otherwise. The
// error is returned unchanged so it propagates as a non-zero exit.
func outputError(globals *Globals, code string, err error) error {
	if globals != nil && globals.Format == "json" {
		json.NewEncoder(globals.Stdout).Encode(errorOutput{
			Type:  "error",
			Code:  code,
			Error: err.Error(),
		})
	} else if globals != nil {
		fmt.Fprintf(globals.Stderr, "Error [%s]: %v\n", code, err)
	}
	return err
}
