package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"estatekeeper/internal/types"
)

var (
	docTitle string
	docNotes string
	docTags  []string
	docOut   string
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Manage estate documents",
}

var docAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Attach a file as an estate document",
	Args:  cobra.ExactArgs(1),
	RunE:  docAdd,
}

var docListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents (newest first)",
	RunE:  docList,
}

var docGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Write a document's bytes back to disk",
	Args:  cobra.ExactArgs(1),
	RunE:  docGet,
}

var docRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a document and its stored bytes",
	Args:  cobra.ExactArgs(1),
	RunE:  docRm,
}

func init() {
	docAddCmd.Flags().StringVar(&docTitle, "title", "", "Document title (default: filename)")
	docAddCmd.Flags().StringVar(&docNotes, "notes", "", "Notes")
	docAddCmd.Flags().StringSliceVar(&docTags, "tag", nil, "Tag: Legal|Tax|Property|Receipts|Bank|ID|Other (repeatable)")
	docGetCmd.Flags().StringVarP(&docOut, "out", "o", "", "Output path (default: stored filename)")

	docCmd.AddCommand(docAddCmd)
	docCmd.AddCommand(docListCmd)
	docCmd.AddCommand(docGetCmd)
	docCmd.AddCommand(docRmCmd)
}

func docAdd(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	filename := filepath.Base(args[0])
	mimeType := mime.TypeByExtension(filepath.Ext(filename))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	tags := make([]types.DocumentTag, 0, len(docTags))
	for _, t := range docTags {
		tags = append(tags, types.DocumentTag(t))
	}

	now := nowISO()
	doc := types.DocumentRecord{
		ID:        uuid.NewString(),
		Filename:  filename,
		MimeType:  mimeType,
		Size:      int64(len(data)),
		Title:     docTitle,
		Notes:     docNotes,
		Tags:      tags,
		CreatedAt: now,
		BlobRef:   uuid.NewString(),
	}
	if err := s.AddDocument(doc, data); err != nil {
		return err
	}
	logger.Info("Document stored",
		zap.String("id", doc.ID),
		zap.String("filename", filename),
		zap.Int64("size", doc.Size))
	fmt.Printf("Added document %s (%s, %d bytes)\n", doc.ID, filename, doc.Size)
	return nil
}

func docList(cmd *cobra.Command, args []string) error {
	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	docs, err := s.ListDocuments()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILENAME\tSIZE\tTAGS\tTITLE")
	for _, doc := range docs {
		tags := ""
		for i, t := range doc.Tags {
			if i > 0 {
				tags += ","
			}
			tags += string(t)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", doc.ID, doc.Filename, doc.Size, orDash(tags), doc.Title)
	}
	return w.Flush()
}

func docGet(cmd *cobra.Command, args []string) error {
	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.GetDocument(args[0])
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document %s not found", args[0])
	}
	data, err := s.GetBlob(doc.BlobRef)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("document %s has no stored bytes", args[0])
	}

	out := docOut
	if out == "" {
		out = doc.Filename
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", out, len(data))
	return nil
}

func docRm(cmd *cobra.Command, args []string) error {
	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteDocument(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted document %s\n", args[0])
	return nil
}
