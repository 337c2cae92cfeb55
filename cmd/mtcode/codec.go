package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtkit/mtcode/pkg/message"
)

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [text]",
		Short: "Parse MT code text into message segments",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(message.Parse(input), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render [json]",
		Short: "Render message segments JSON back to MT code text",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			var msg message.Message
			if err := json.Unmarshal([]byte(input), &msg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg.String())
			return nil
		},
	}
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [text]",
		Short: "Extract the plain text content of MT code text",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			reduce, _ := cmd.Flags().GetBool("reduce")
			msg := message.Parse(input)
			fmt.Fprintln(cmd.OutOrStdout(), msg.ExtractPlainText(reduce))
			return nil
		},
	}
	cmd.Flags().Bool("reduce", false, "Normalize the message before extracting")
	return cmd
}

func escapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escape [text]",
		Short: "Escape raw text for embedding in MT code",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			comma, _ := cmd.Flags().GetBool("comma")
			if comma {
				fmt.Fprintln(cmd.OutOrStdout(), message.Escape(input))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), message.EscapeText(input))
			}
			return nil
		},
	}
	cmd.Flags().Bool("comma", true, "Escape commas as well, as required inside parameter values")
	return cmd
}

func unescapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unescape [text]",
		Short: "Reverse MT code entity escaping",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), message.Unescape(input))
			return nil
		},
	}
}
