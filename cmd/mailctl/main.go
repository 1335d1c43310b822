package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mailgate/mailgate/internal/config"
	"github.com/mailgate/mailgate/internal/email"
	"github.com/mailgate/mailgate/internal/logger"
	"github.com/mailgate/mailgate/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "mailctl",
	Short: "Operator CLI for MailGate",
}

var (
	sendTo      string
	sendSubject string
	sendBody    string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a test email through the configured transport",
	RunE:  runSend,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configured email transport",
	RunE:  runCheck,
}

func init() {
	sendCmd.Flags().StringVar(&sendTo, "to", "", "recipient email address (required)")
	sendCmd.Flags().StringVar(&sendSubject, "subject", "MailGate test email", "email subject")
	sendCmd.Flags().StringVar(&sendBody, "body", "This is a test email sent by mailctl.", "email body")
	sendCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(cfg.Log.Level, "console")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sender, err := email.New(ctx, cfg.Email, log)
	if err != nil {
		return fmt.Errorf("failed to initialize email transport: %w", err)
	}
	mode, _ := email.ParseMode(cfg.Email.Mode)

	svc := service.NewMailService(sender, mode, log)
	result, err := svc.Send(ctx, service.SendRequest{
		ReceiverEmail: sendTo,
		Subject:       sendSubject,
		BodyText:      sendBody,
	})
	if err != nil {
		return fmt.Errorf("send failed: %w", err)
	}

	fmt.Printf("Email sent via %s", result.Mode)
	if result.MessageID != "" {
		fmt.Printf(" (message id %s)", result.MessageID)
	}
	fmt.Println()
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New("error", "console")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if _, err := email.New(ctx, cfg.Email, log); err != nil {
		return fmt.Errorf("transport configuration is invalid: %w", err)
	}

	mode, _ := email.ParseMode(cfg.Email.Mode)
	fmt.Printf("Transport %q is configured correctly\n", mode)
	fmt.Printf("Sender address: %s\n", cfg.Email.SenderAddress)
	return nil
}
