package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"quicknotes/client"
	"quicknotes/model"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	listQuery  string
	listFilter string
	listTags   []string
	listOut    string

	editTitle  string
	editTags   []string
	editDelay  time.Duration
	editAppend bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		if err := s.store.LoadNotes(context.Background(), listQuery, listTags); err != nil {
			return err
		}
		notes := s.store.Notes()
		if listFilter != "" {
			notes = s.store.FilterNotes(listFilter)
		}
		return renderNotes(os.Stdout, listOut, notes)
	},
}

// noteView is the yaml shape of a listed note.
type noteView struct {
	ID      string    `yaml:"id"`
	Title   string    `yaml:"title"`
	Tags    []string  `yaml:"tags,flow"`
	Created time.Time `yaml:"created"`
	Updated time.Time `yaml:"updated"`
	Content string    `yaml:"content"`
}

func renderNotes(out io.Writer, format string, notes []model.Note) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(notes)
	case "yaml":
		views := make([]noteView, 0, len(notes))
		for _, note := range notes {
			views = append(views, noteView{
				ID:      note.ID,
				Title:   note.Title,
				Tags:    note.Tags,
				Created: note.CreatedAt,
				Updated: note.UpdatedAt,
				Content: note.Content,
			})
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	case "", "table":
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tTAGS\tUPDATED")
		for _, note := range notes {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", note.ID, note.Title,
				strings.Join(note.Tags, ","), note.UpdatedAt.Local().Format(time.DateTime))
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note with default content",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		note, err := s.store.CreateNote(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(note.ID)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a note; each stdin line becomes a paragraph and is autosaved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession()
		if err != nil {
			return err
		}
		if err := s.store.LoadNotes(ctx, "", nil); err != nil {
			return err
		}
		if !s.store.Select(args[0]) {
			return fmt.Errorf("note %s not found", args[0])
		}
		note := *s.store.Selected()

		saver := client.NewAutosaver(ctx, editDelay, func(ctx context.Context, n model.Note) (*model.Note, error) {
			slog.Debug("autosaving", "id", n.ID, "bytes", len(n.Content))
			return s.store.UpdateNote(ctx, n)
		})

		if cmd.Flags().Changed("title") {
			note.Title = editTitle
			saver.Edit(note)
		}
		if cmd.Flags().Changed("tag") {
			note.Tags = client.AddTags(nil, editTags...)
			saver.Edit(note)
		}

		if !editAppend {
			note.Content = ""
		}
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			note.Content += "<p>" + html.EscapeString(scanner.Text()) + "</p>"
			saver.Edit(note)
		}
		if err := scanner.Err(); err != nil {
			saver.Cancel()
			return err
		}

		if err := saver.Flush(); err != nil {
			return err
		}
		if err := saver.Err(); err != nil {
			return err
		}
		if banner := s.store.Err(); banner != "" {
			return fmt.Errorf("%s", banner)
		}
		fmt.Println("Saved ✓")
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		return s.store.DeleteNote(context.Background(), args[0])
	},
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Substring of title or content (case-sensitive, server side)")
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "Case-insensitive match on title, content or any tag, applied locally")
	listCmd.Flags().StringSliceVarP(&listTags, "tag", "t", nil, "Only notes carrying every given tag")
	listCmd.Flags().StringVarP(&listOut, "output", "o", "table", "Output format: table, json or yaml")

	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringSliceVarP(&editTags, "tag", "t", nil, "Replace tags (duplicates are ignored)")
	editCmd.Flags().DurationVar(&editDelay, "delay", client.DefaultAutosaveDelay, "Autosave idle delay")
	editCmd.Flags().BoolVar(&editAppend, "append", false, "Append stdin to the existing content instead of replacing it")

	rootCmd.AddCommand(listCmd, newCmd, editCmd, rmCmd)
}
