package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSignupCmd() *cobra.Command {
	var email, username, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Signup(cmd.Context(), email, username, password)
			if err != nil {
				return err
			}

			fmt.Println(resp.Message)
			if resp.VerificationCode != "" {
				fmt.Printf("Verification code (dev mode): %s\n", resp.VerificationCode)
			}
			fmt.Printf("Verify with: brainbreak verify --email %s --code <code>\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newSigninCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in with an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Signin(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			if err := cfg.SaveSession(resp.Token, email); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			fmt.Printf("Signed in as %s\n", resp.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newVerifyCmd() *cobra.Command {
	var email, code string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify an email address with a 6-digit code",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Verify(cmd.Context(), email, code)
			if err != nil {
				return err
			}

			if err := cfg.SaveSession(resp.Token, email); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			fmt.Printf("Email verified, signed in as %s\n", resp.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&code, "code", "", "6-digit verification code (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newResendCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "resend",
		Short: "Request a fresh verification code",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Resend(cmd.Context(), email)
			if err != nil {
				return err
			}

			fmt.Println("Verification code sent")
			if resp.VerificationCode != "" {
				fmt.Printf("Verification code (dev mode): %s\n", resp.VerificationCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
