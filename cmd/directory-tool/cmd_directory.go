package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"trustgrade-workers/internal/directory"
	"trustgrade-workers/internal/models"
	"trustgrade-workers/internal/profile"
)

var searchFlags struct {
	query     string
	industry  string
	location  string
	size      string
	grade     string
	minRating string
	verified  bool
}

var slugifyCmd = &cobra.Command{
	Use:   "slugify [name...]",
	Short: "Print the route slug for each business name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSlugify,
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the directory with the same filters the workers use",
	Example: `  directory-tool search --industry Technology --min-rating 4.5
  directory-tool search -q manufacturing --size large --verified`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [slug]",
	Short: "Resolve a profile slug to its listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

var profileCmd = &cobra.Command{
	Use:   "profile [slug]",
	Short: "Render the public profile for a slug",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfile,
}

func init() {
	f := searchCmd.Flags()
	f.StringVarP(&searchFlags.query, "query", "q", "", "case-insensitive text matched against name, description and services")
	f.StringVar(&searchFlags.industry, "industry", directory.All, "industry")
	f.StringVar(&searchFlags.location, "location", directory.All, "location")
	f.StringVar(&searchFlags.size, "size", directory.All, "company size: all, small, medium or large")
	f.StringVar(&searchFlags.grade, "grade", directory.All, "trust grade")
	f.StringVar(&searchFlags.minRating, "min-rating", directory.All, "minimum rating between 0 and 5")
	f.BoolVar(&searchFlags.verified, "verified", false, "only verified businesses")
}

func runSlugify(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range args {
		fmt.Fprintf(out, "%s\t%s\n", directory.Slugify(name), name)
	}
	return nil
}

func searchCriteria() (directory.Criteria, error) {
	size, err := directory.ParseSize(searchFlags.size)
	if err != nil {
		return directory.Criteria{}, err
	}
	minRating, err := directory.ParseMinRating(searchFlags.minRating)
	if err != nil {
		return directory.Criteria{}, err
	}
	return directory.Criteria{
		Query:        strings.TrimSpace(searchFlags.query),
		Industry:     searchFlags.industry,
		Location:     searchFlags.location,
		Size:         size,
		Grade:        searchFlags.grade,
		MinRating:    minRating,
		VerifiedOnly: searchFlags.verified,
	}, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	criteria, err := searchCriteria()
	if err != nil {
		return err
	}

	st, _, err := openDirectory()
	if err != nil {
		return err
	}
	defer st.Close()

	results, err := st.Directory.Search(cmd.Context(), criteria)
	if err != nil {
		return err
	}
	if results == nil {
		results = []models.BusinessListing{}
	}
	return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
		"businesses": results,
		"total":      len(results),
	})
}

func runResolve(cmd *cobra.Command, args []string) error {
	st, _, err := openDirectory()
	if err != nil {
		return err
	}
	defer st.Close()

	listing, err := st.Directory.ResolveSlug(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), listing)
}

func runProfile(cmd *cobra.Command, args []string) error {
	st, cfg, err := openDirectory()
	if err != nil {
		return err
	}
	defer st.Close()

	listing, err := st.Directory.ResolveSlug(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), profile.Build(*listing, cfg.Profile))
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
