package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"forgelsp/internal/callsite"
)

var callatCmd = &cobra.Command{
	Use:   "callat [flags] file offset",
	Short: "Show the call and argument enclosing a byte offset",
	Long: `Callat finds the innermost unclosed call before a byte offset of a file,
the argument the offset falls in and the registry's description of it. It is
the basis of signature help in editors.`,
	Args: cobra.ExactArgs(2),
	RunE: runCallAt,
}

func init() {
	callatCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type callAtPayload struct {
	Function string   `json:"function"`
	Usage    string   `json:"usage,omitempty"`
	Known    bool     `json:"known"`
	ArgIndex int      `json:"arg_index"`
	Param    string   `json:"param,omitempty"`
	Type     string   `json:"type,omitempty"`
	Doc      string   `json:"doc,omitempty"`
	Enum     []string `json:"enum,omitempty"`
}

func runCallAt(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	offset, err := strconv.Atoi(args[1])
	if err != nil || offset < 0 {
		return fmt.Errorf("invalid offset %q", args[1])
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	s, err := loadSession(cmd, filePath)
	if err != nil {
		return err
	}
	// #nosec G304 -- path is provided by the user
	content, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if offset > len(content) {
		return fmt.Errorf("offset %d is past the end of %s (%d bytes)", offset, filePath, len(content))
	}

	call, ok := callsite.Find(string(content), offset)
	if !ok {
		return fmt.Errorf("no call encloses offset %d", offset)
	}
	info, known := callsite.Resolve(s.registry, call)

	payload := callAtPayload{Function: "$" + call.Name, Known: known, ArgIndex: call.ArgIndex}
	if known {
		payload.Function = info.Signature.Name
		payload.Usage = info.Signature.Usage()
		payload.Doc = info.Signature.Description
	}
	if info.Param != nil {
		payload.Param = info.Param.Name
		payload.Type = info.Param.Type.String()
		if info.Param.Description != "" {
			payload.Doc = info.Param.Description
		}
		payload.Enum = info.Enum
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "pretty":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !known {
		fmt.Fprintf(out, "%s (unknown function), argument %d\n", payload.Function, payload.ArgIndex)
		return nil
	}
	fmt.Fprintln(out, payload.Usage)
	if payload.Param != "" {
		fmt.Fprintf(out, "argument %d: %s", payload.ArgIndex, payload.Param)
		if payload.Type != "" {
			fmt.Fprintf(out, " (%s)", payload.Type)
		}
		fmt.Fprintln(out)
	} else {
		fmt.Fprintf(out, "argument %d: not declared\n", payload.ArgIndex)
	}
	if len(payload.Enum) > 0 {
		fmt.Fprintf(out, "one of: %v\n", payload.Enum)
	}
	if payload.Doc != "" {
		fmt.Fprintln(out, payload.Doc)
	}
	return nil
}
