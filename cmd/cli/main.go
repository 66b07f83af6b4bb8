package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

// minorPerMajor converts between the API's integer minor units and the
// decimal amounts users type on the command line.
var minorPerMajor = decimal.NewFromInt(100)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gobank-cli",
		Short: "GoBank CLI tool",
		Long:  `A command line interface for interacting with the GoBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		registerCmd(),
		depositCmd(),
		withdrawCmd(),
		transferCmd(),
		takeLoanCmd(),
		payLoanCmd(),
		balanceCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Register a new user",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			result := post("/api/v1/register", map[string]any{
				"username": args[0],
				"password": args[1],
			})
			fmt.Printf("Registered %s\n", result["username"])
		},
	}
}

func depositCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <username> <password> <amount>",
		Short: "Deposit money into an account",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			result := post("/api/v1/deposit", map[string]any{
				"username": args[0],
				"password": args[1],
				"amount":   parseAmount(args[2]),
			})
			printReceipt(result)
		},
	}
}

func withdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <username> <password> <amount>",
		Short: "Withdraw money from an account",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			result := post("/api/v1/withdraw", map[string]any{
				"username": args[0],
				"password": args[1],
				"amount":   parseAmount(args[2]),
			})
			printReceipt(result)
		},
	}
}

func transferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <username> <password> <receiver> <amount>",
		Short: "Transfer money to another account",
		Args:  cobra.ExactArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			result := post("/api/v1/transfer", map[string]any{
				"username": args[0],
				"password": args[1],
				"receiver": args[2],
				"amount":   parseAmount(args[3]),
			})
			printReceipt(result)
		},
	}
}

func takeLoanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take-loan <username> <password> <amount>",
		Short: "Take a loan",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			result := post("/api/v1/loans/take", map[string]any{
				"username": args[0],
				"password": args[1],
				"amount":   parseAmount(args[2]),
			})
			printReceipt(result)
		},
	}
}

func payLoanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pay-loan <username> <password> <amount>",
		Short: "Pay back a loan",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			result := post("/api/v1/loans/pay", map[string]any{
				"username": args[0],
				"password": args[1],
				"amount":   parseAmount(args[2]),
			})
			if noDebt, ok := result["no_debt"].(bool); ok && noDebt {
				fmt.Println("No outstanding debt, nothing to pay")
			}
			printReceipt(result)
		},
	}
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <username> <password>",
		Short: "Show account balances",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			result := post("/api/v1/balance", map[string]any{
				"username": args[0],
				"password": args[1],
			})
			fmt.Printf("Account:  %s\n", result["username"])
			fmt.Printf("Cash:     %s\n", formatAmount(result["cash_balance"]))
			fmt.Printf("Debt:     %s\n", formatAmount(result["debt_balance"]))
		},
	}
}

// parseAmount turns a decimal amount like "12.50" into integer minor units.
func parseAmount(s string) int64 {
	d, err := decimal.NewFromString(s)
	if err != nil {
		fmt.Printf("Invalid amount %q: %v\n", s, err)
		os.Exit(1)
	}

	minor := d.Mul(minorPerMajor)
	if !minor.IsInteger() {
		fmt.Printf("Invalid amount %q: more than two decimal places\n", s)
		os.Exit(1)
	}

	return minor.IntPart()
}

// formatAmount renders integer minor units as a decimal amount.
func formatAmount(v any) string {
	f, ok := v.(float64)
	if !ok {
		return "?"
	}

	return decimal.NewFromFloat(f).Div(minorPerMajor).StringFixed(2)
}

func post(path string, payload map[string]any) map[string]any {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var result map[string]any
	if err := json.Unmarshal(respBody, &result); err != nil {
		fmt.Printf("Failed to parse response (Status: %d): %s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := result["error"].(string)
		if details, ok := result["message"].(string); ok && details != "" {
			msg = fmt.Sprintf("%s: %s", msg, details)
		}
		fmt.Printf("Request failed (Status: %d): %s\n", resp.StatusCode, msg)
		os.Exit(1)
	}

	return result
}

func printReceipt(result map[string]any) {
	fmt.Printf("Receipt:  %s\n", result["id"])
	fmt.Printf("Account:  %s\n", result["username"])
	fmt.Printf("Cash:     %s\n", formatAmount(result["cash_balance"]))
	fmt.Printf("Debt:     %s\n", formatAmount(result["debt_balance"]))
}
