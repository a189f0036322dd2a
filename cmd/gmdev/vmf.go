// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/luca1197/gmod-developer-cli/internal/collect"
	"github.com/luca1197/gmod-developer-cli/internal/issue"
	"github.com/luca1197/gmod-developer-cli/internal/vmf"
	"github.com/spf13/cobra"
)

var (
	vmfSourcePaths []string
	vmfOutputPath  string

	// vmfCmd groups operations on VMF map sources.
	vmfCmd = &cobra.Command{
		Use:   "vmf",
		Short: "Work with VMF map sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	vmfCollectCmd = &cobra.Command{
		Use:   "collect-content <map.vmf>",
		Short: "Collect all content a map references into a directory",
		Long: `Collect all content a map references into a directory.

Extracts every material and model reference from the map, resolves each
against the source paths (earlier paths win) and copies the hits into the
output directory with their relative paths preserved. References satisfied
by Garry's Mod's own mounted content are skipped; everything else is
reported as missing.`,
		Args: cobra.ExactArgs(1),
		RunE: runVMFCollect,
	}

	vmfStatsCmd = &cobra.Command{
		Use:   "stats <map.vmf>",
		Short: "Print geometry and entity statistics for a map",
		Args:  cobra.ExactArgs(1),
		RunE:  runVMFStats,
	}
)

func init() {
	vmfCollectCmd.Flags().StringArrayVarP(&vmfSourcePaths, "source-path", "s", nil, "content directory to search, earlier paths win (repeatable)")
	vmfCollectCmd.Flags().StringVarP(&vmfOutputPath, "output-path", "o", "", "directory to copy collected content into")
	_ = vmfCollectCmd.MarkFlagRequired("output-path")

	vmfCmd.AddCommand(vmfCollectCmd)
	vmfCmd.AddCommand(vmfStatsCmd)
}

// parseMapFile opens and parses a VMF document.
func parseMapFile(path string) (*vmf.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, issue.WrapWithContext(err, "open map file", path)
	}
	defer f.Close()

	doc, err := vmf.Parse(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, issue.Get(issue.MapParseFailedId).Render(0))
		return nil, issue.NewErrorContext().
			WithOperation("parse map file").
			WithResource(path).
			WithSuggestion("Re-save the map from Hammer to repair the file").
			WithSuggestion("Run with --verbose to see the full error chain").
			Wrap(err).
			BuildError()
	}
	return doc, nil
}

func runVMFCollect(cmd *cobra.Command, args []string) error {
	mapPath := args[0]
	if err := validateInputFile(mapPath, "vmf"); err != nil {
		return issue.WrapWithContext(err, "read map file", mapPath)
	}

	logger := newLogger()

	doc, err := parseMapFile(mapPath)
	if err != nil {
		return err
	}

	env, err := newCollectEnv(effectiveSourceDirs(vmfSourcePaths), vmfOutputPath, logger)
	if err != nil {
		return err
	}

	collector := &collect.Collector{
		Search: env.search,
		Output: env.output,
		Logger: env.logger,
	}
	if _, err := collector.CollectMap(doc); err != nil {
		return err
	}

	fmt.Printf("%s Collected content for %s into %s\n", SuccessStyle.Render("✓"), filepath.Base(mapPath), vmfOutputPath)
	return nil
}

func runVMFStats(cmd *cobra.Command, args []string) error {
	mapPath := args[0]
	if err := validateInputFile(mapPath, "vmf"); err != nil {
		return issue.WrapWithContext(err, "read map file", mapPath)
	}

	doc, err := parseMapFile(mapPath)
	if err != nil {
		return err
	}

	stats := doc.Stats()

	fmt.Println(TitleStyle.Render("Map statistics") + " " + SubtitleStyle.Render(filepath.Base(mapPath)))
	fmt.Println()
	fmt.Printf("%s: %d\n", CmdStyle.Render("solids"), stats.Solids)
	fmt.Printf("%s: %d\n", CmdStyle.Render("faces"), stats.Faces)
	fmt.Printf("%s: %d\n", CmdStyle.Render("vertices"), stats.Vertices)
	fmt.Printf("%s: %d\n", CmdStyle.Render("entities"), stats.Entities)
	fmt.Printf("%s: %d\n", CmdStyle.Render("materials"), stats.Materials)
	return nil
}
