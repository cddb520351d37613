package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mantara-io/gworkspace/gmail"
)

var gmailCmd = &cobra.Command{
	Use:   "gmail",
	Short: "Work with Gmail messages",
}

var gmailListCmd = &cobra.Command{
	Use:   "list",
	Short: "List messages in the mailbox",
	RunE:  runGmailList,
}

var gmailGetCmd = &cobra.Command{
	Use:   "get [message-id]",
	Short: "Show one message",
	Args:  cobra.ExactArgs(1),
	RunE:  runGmailGet,
}

// Flags for gmail commands.
var (
	gmailAccount string
	gmailQuery   string
	gmailLabels  []string
	gmailMax     int64
)

func init() {
	gmailListCmd.Flags().StringVar(
		&gmailAccount, "account", "", "Stored account to act as")
	gmailListCmd.Flags().StringVar(
		&gmailQuery, "query", "", "Gmail search query, e.g. \"is:unread from:boss\"")
	gmailListCmd.Flags().StringSliceVar(
		&gmailLabels, "labels", nil, "Restrict to messages carrying all these label IDs")
	gmailListCmd.Flags().Int64Var(
		&gmailMax, "max", 20, "Maximum number of messages")

	gmailGetCmd.Flags().StringVar(
		&gmailAccount, "account", "", "Stored account to act as")

	gmailCmd.AddCommand(gmailListCmd)
	gmailCmd.AddCommand(gmailGetCmd)
	rootCmd.AddCommand(gmailCmd)
}

func runGmailList(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	store, err := openData()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := loadRecord(ctx, store, gmailAccount)
	if err != nil {
		return err
	}
	mgr := clientForRecord(store, rec)

	svc := gmail.NewMessages(mgr)
	builder := svc.List("me").MaxResults(gmailMax)
	if gmailQuery != "" {
		builder.Query(gmailQuery)
	}
	if len(gmailLabels) > 0 {
		builder.LabelIDs(gmailLabels...)
	}

	list, err := builder.Request(ctx)
	if err != nil {
		return err
	}
	if len(list.Messages) == 0 {
		cmd.Println("No messages.")
		return nil
	}

	// The list endpoint returns ids only; fetch headers per message.
	for i := range list.Messages {
		msg, err := svc.Get("me", list.Messages[i].ID).
			Format(gmail.FormatMetadata).
			MetadataHeaders("Subject", "From", "Date").
			Request(ctx)
		if err != nil {
			return err
		}
		cmd.Printf("%s  %-30s  %s\n",
			msg.ID, truncate(headerValue(msg, "From"), 30), headerValue(msg, "Subject"))
	}
	return nil
}

func runGmailGet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := openData()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := loadRecord(ctx, store, gmailAccount)
	if err != nil {
		return err
	}
	mgr := clientForRecord(store, rec)

	msg, err := gmail.NewMessages(mgr).Get("me", args[0]).
		Format(gmail.FormatFull).
		Request(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("From:    %s\n", headerValue(msg, "From"))
	cmd.Printf("Date:    %s\n", headerValue(msg, "Date"))
	cmd.Printf("Subject: %s\n", headerValue(msg, "Subject"))
	cmd.Printf("Labels:  %s\n", strings.Join(msg.LabelIDs, ", "))
	cmd.Println()
	cmd.Println(msg.Snippet)
	return nil
}

// headerValue returns the first matching header from the message payload.
func headerValue(msg *gmail.Message, name string) string {
	if msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}
