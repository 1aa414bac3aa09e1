package wallet

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Sender broadcasts a payment transaction for an exact address/amount
// pair and returns the transaction ID. Amounts are in the currency's
// base unit.
type Sender interface {
	Send(ctx context.Context, currency, address string, amount uint64) (txid string, err error)
}

// ExecSender implements Sender by invoking an external wallet command:
//
//	<command> send <currency> <address> <amount>
//
// The wallet credential is written to the command's stdin so it never
// appears in the process list. The command must print the transaction
// ID on stdout and exit zero.
//
// Multi-currency wallet signing (btc/bch/bsv/xmr) is out of scope for
// this client; delegating to an operator-chosen wallet binary keeps it
// that way.
type ExecSender struct {
	// Command is the wallet binary, from config.
	Command string
	// Credential is the wallet private key or seed, from the keychain.
	Credential string
}

func (s *ExecSender) Send(ctx context.Context, currency, address string, amount uint64) (string, error) {
	if s.Command == "" {
		return "", fmt.Errorf("no wallet command configured")
	}

	cmd := exec.CommandContext(ctx, s.Command, "send", currency, address, strconv.FormatUint(amount, 10))
	cmd.Stdin = strings.NewReader(s.Credential)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("wallet command failed: %s: %w", msg, err)
		}
		return "", fmt.Errorf("wallet command failed: %w", err)
	}

	txid := strings.TrimSpace(stdout.String())
	if txid == "" {
		return "", fmt.Errorf("wallet command printed no transaction id")
	}
	return txid, nil
}
