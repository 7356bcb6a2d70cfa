package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"lookout/internal/domain"
	"lookout/internal/logging"
	"lookout/internal/lookup"
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Run a single user search and print the results",
	Long: `Sends one lookup through the same client the UI uses, including the rate
limiter and the cache, and prints what comes back.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().Int("limit", 0, "maximum number of results (0 means the configured page size)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

type userJSON struct {
	ID         int64  `json:"id"`
	Login      string `json:"login"`
	AvatarURL  string `json:"avatar_url"`
	ProfileURL string `json:"html_url"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, _, err := loadConfig(nil)
	if err != nil {
		return err
	}
	log.SetDefault(logging.New(os.Stderr, cfg.Log.Level, verbose))

	users, err := lookup.FromConfig(cfg).Lookup(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeUsersJSON(out, users)
	}
	writeUsers(out, args[0], users)
	return nil
}

func writeUsersJSON(w io.Writer, users []domain.User) error {
	rows := make([]userJSON, len(users))
	for i, u := range users {
		rows[i] = userJSON{ID: u.ID, Login: u.Login, AvatarURL: u.AvatarURL, ProfileURL: u.ProfileURL}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}

func writeUsers(w io.Writer, query string, users []domain.User) {
	if len(users) == 0 {
		fmt.Fprintf(w, "No results found for %q\n", query)
		return
	}

	login := lipgloss.NewStyle().Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, u := range users {
		fmt.Fprintf(w, "%2d. %s  %s\n", i+1, login.Render(u.Login), dim.Render(u.ProfileURL))
	}
}
