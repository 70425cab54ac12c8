package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"forgelsp/internal/registry"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect and compile function registries",
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered functions",
	Args:  cobra.NoArgs,
	RunE:  runRegistryList,
}

var registryShowCmd = &cobra.Command{
	Use:   "show name",
	Short: "Show one function's signature",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegistryShow,
}

var registryCompileCmd = &cobra.Command{
	Use:   "compile -o out.mp",
	Short: "Merge the configured registries into one MessagePack snapshot",
	Args:  cobra.NoArgs,
	RunE:  runRegistryCompile,
}

func init() {
	registryListCmd.Flags().String("category", "", "only functions of this category")
	registryShowCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	registryCompileCmd.Flags().StringP("output", "o", "", "snapshot path (required)")
	_ = registryCompileCmd.MarkFlagRequired("output")

	registryCmd.AddCommand(registryListCmd, registryShowCmd, registryCompileCmd)
}

func runRegistryList(cmd *cobra.Command, _ []string) error {
	category, err := cmd.Flags().GetString("category")
	if err != nil {
		return fmt.Errorf("failed to get category flag: %w", err)
	}
	s, err := loadSession(cmd, ".")
	if err != nil {
		return err
	}

	nameColor := color.New(color.FgCyan)
	deprecated := color.New(color.FgYellow)
	if !s.color {
		nameColor.DisableColor()
		deprecated.DisableColor()
	}
	out := cmd.OutOrStdout()
	for _, sig := range s.registry.Functions() {
		if category != "" && !strings.EqualFold(sig.Category, category) {
			continue
		}
		line := nameColor.Sprint(sig.Usage())
		if sig.Deprecated {
			line += " " + deprecated.Sprint("(deprecated)")
		}
		if sig.Description != "" {
			line += "  " + sig.Description
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func runRegistryShow(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	s, err := loadSession(cmd, ".")
	if err != nil {
		return err
	}
	sig, ok := s.registry.Lookup(args[0])
	if !ok {
		msg := fmt.Sprintf("unknown function %s", registry.CanonicalName(args[0]))
		if alt := s.registry.Suggest(args[0], 1); len(alt) > 0 {
			msg += fmt.Sprintf(" (did you mean %s?)", alt[0])
		}
		return errors.New(msg)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(sig)
	}
	if format != "pretty" {
		return fmt.Errorf("unknown format: %s", format)
	}

	fmt.Fprintln(out, sig.Usage())
	if sig.Description != "" {
		fmt.Fprintln(out, sig.Description)
	}
	fmt.Fprintf(out, "brackets: %s\n", sig.Brackets)
	for i := range sig.Args {
		a := &sig.Args[i]
		fmt.Fprintf(out, "  %s", a.Name)
		if t := a.Type.String(); t != "" {
			fmt.Fprintf(out, ": %s", t)
		}
		if values := s.registry.EnumValues(a); len(values) > 0 {
			fmt.Fprintf(out, " {%s}", strings.Join(values, ", "))
		}
		if a.Description != "" {
			fmt.Fprintf(out, "  %s", a.Description)
		}
		fmt.Fprintln(out)
	}
	if t := sig.Output.String(); t != "" {
		fmt.Fprintf(out, "returns: %s\n", t)
	}
	if sig.Source != "" {
		fmt.Fprintf(out, "source: %s\n", sig.Source)
	}
	return nil
}

func runRegistryCompile(cmd *cobra.Command, _ []string) error {
	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	s, err := loadSession(cmd, ".")
	if err != nil {
		return err
	}
	if err := s.registry.SaveSnapshot(outPath); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if !s.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d functions to %s\n", s.registry.Len(), outPath)
	}
	return nil
}
