package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/binoviz/bino/pkg/dataset"
	"github.com/binoviz/bino/pkg/style"
)

// listCommand enumerates the datasets of a store with their indices.
func (c *CLI) listCommand() *cobra.Command {
	var delimiter string

	cmd := &cobra.Command{
		Use:   "list FILE",
		Short: "List the datasets of a file with their indices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := dataset.Open(ctx, args[0], delimiter)
			if err != nil {
				return err
			}
			defer store.Close()

			names, err := store.Names(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, StyleTitle.Render("Index")+"\t"+StyleTitle.Render("Dataset"))
			for i, name := range names {
				fmt.Fprintf(out, "%d\t%s\n", i, name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&delimiter, "delimiter", c.Config.Delimiter, "column delimiter for text files")
	return cmd
}

// colorsCommand prints the 256-color table so users can pick palette
// codes.
func (c *CLI) colorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "Show the 256 terminal color codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for code := 0; code < 256; code++ {
				fg := 231
				if code >= 244 || (code >= 7 && code <= 15) {
					fg = 16
				}
				fmt.Fprint(out, style.Paint(fmt.Sprintf(" %3d ", code), fg, code, false))
				if code%8 == 7 {
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}
}

// colormapsCommand shows the built-in colormaps and any config
// palettes as swatch rows.
func (c *CLI) colormapsCommand() *cobra.Command {
	var whiteBG bool

	cmd := &cobra.Command{
		Use:   "colormaps",
		Short: "Show the built-in colormaps and config palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			bg := 16
			if whiteBG {
				bg = 231
			}
			for i, palette := range style.Colormaps {
				fmt.Fprintf(out, "%-10s %s\n", fmt.Sprintf("%d", i), swatches(palette, bg))
			}
			names := make([]string, 0, len(c.Config.Palettes))
			for name := range c.Config.Palettes {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "%-10s %s\n", name, swatches(c.Config.Palettes[name].Codes, bg))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&whiteBG, "white-bg", c.Config.WhiteBG, "white background")
	return cmd
}

// swatches renders one six-glyph block per palette entry.
func swatches(palette []int, bg int) string {
	var b strings.Builder
	for _, code := range palette {
		b.WriteString(style.Paint(strings.Repeat("■", 6), code, bg, false))
	}
	return b.String()
}
