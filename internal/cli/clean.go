package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alejandroruanova/text-cleaner-service/internal/core/services/cleaner"
	"github.com/alejandroruanova/text-cleaner-service/internal/core/services/jobs"
	"github.com/alejandroruanova/text-cleaner-service/internal/core/services/linearizer"
	"github.com/alejandroruanova/text-cleaner-service/internal/infrastructure/markup"
	"github.com/alejandroruanova/text-cleaner-service/internal/infrastructure/parsers"
)

var errNoInput = errors.New("no input text: pass text as arguments, use --infile or pipe to stdin")

func (a *app) cleanCommand() *cobra.Command {
	var infile string

	cmd := &cobra.Command{
		Use:   "clean [text...]",
		Short: "Clean text given as arguments, a file or stdin",
		Long: "Clean text line by line. Text is taken from the arguments, from --infile,\n" +
			"or from stdin when neither is given.",
		Example: `  textcleaner clean "Þetta er 🔥 (e. fire)"
  textcleaner clean -p v1-strict --infile frettir.txt
  cat frettir.txt | textcleaner clean`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args, infile)
			if err != nil {
				return err
			}
			p, err := a.pipeline()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.CleanLines(strings.TrimSuffix(text, "\n")))
			return nil
		},
	}
	cmd.Flags().StringVarP(&infile, "infile", "i", "", "Read text from this file")
	return cmd
}

// readInput returns the arguments joined by spaces, the contents of infile,
// or stdin, in that order of preference
func readInput(cmd *cobra.Command, args []string, infile string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if infile != "" {
		data, err := os.ReadFile(infile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", errNoInput
		}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errNoInput
	}
	return string(data), nil
}

func (a *app) htmlCommand() *cobra.Command {
	var (
		selector   string
		keepTables bool
		raw        bool
	)

	cmd := &cobra.Command{
		Use:   "html <file>",
		Short: "Flatten the content of an HTML page and clean it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := markup.Parse(f)
			if err != nil {
				return err
			}
			if selector == "" {
				selector = a.cfg.Cleaner.HTMLSelector
			}
			text, err := linearizer.CleanHTML(doc, linearizer.Options{
				ContentSelector:  selector,
				KeepTableHeaders: keepTables,
			}, a.logger)
			if err != nil {
				return err
			}

			if !raw {
				p, err := a.pipeline()
				if err != nil {
					return err
				}
				text = p.CleanLines(text)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&selector, "selector", "s", "", "CSS selector of the content container (default from HTML_CONTENT_SELECTOR)")
	cmd.Flags().BoolVar(&keepTables, "keep-table-headers", false, "Do not repeat table headers before each cell")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the flattened text without cleaning it")
	return cmd
}

func (a *app) fileCommand() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Clean the text fields of a document (txt, csv, tsv, xlsx, json, jsonl, html)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != jobs.FormatText && format != jobs.FormatJSONL {
				return fmt.Errorf("unknown output format %q", format)
			}
			p, err := a.pipeline()
			if err != nil {
				return err
			}

			factory := parsers.NewParserFactory(a.parserConfig())
			segments, result, err := factory.ParseSegments(context.Background(), args[0])
			if err != nil {
				return err
			}

			texts := make([]string, len(segments))
			for i, s := range segments {
				texts[i] = s.Text
			}
			data, err := jobs.Render(format, segments, p.CleanBatch(texts))
			if err != nil {
				return err
			}

			a.logger.Info("document cleaned",
				"format", result.Format,
				"rows", result.TotalRows,
				"skipped", result.SkippedRows,
				"segments", len(segments))

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(out, data, 0644)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", jobs.FormatText, "Output format: text or jsonl")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write output to this file instead of stdout")
	return cmd
}

func (a *app) profilesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the registered cleaner profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			meta := cleaner.ListAvailableWithMetadata()
			w := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(meta)
			}

			versions := make([]string, 0, len(meta))
			for v := range meta {
				versions = append(versions, v)
			}
			sort.Strings(versions)
			for _, v := range versions {
				m := meta[v]
				fmt.Fprintf(w, "%s\t%s\n", v, m["name"])
				if aliases, _ := m["aliases"].([]string); len(aliases) > 0 {
					fmt.Fprintf(w, "\taliases: %s\n", strings.Join(aliases, ", "))
				}
				fmt.Fprintf(w, "\t%s\n", m["description"])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print profile metadata as JSON")
	return cmd
}
