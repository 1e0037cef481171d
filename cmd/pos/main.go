// Command pos is the shop-counter dashboard for the MobileHub record store.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sangkips/mobilehub-pos/internal/client"
	"github.com/sangkips/mobilehub-pos/internal/config"
	"github.com/sangkips/mobilehub-pos/internal/dashboard"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	"github.com/sangkips/mobilehub-pos/internal/ledger"
	"github.com/sangkips/mobilehub-pos/internal/receipt"
	"github.com/sangkips/mobilehub-pos/pkg/apperror"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const usage = `Usage: pos [--api URL] [--session FILE] <command> [flags]

Commands:
  login <email>          sign in (password is prompted)
  logout                 sign out
  list [-q text]         list records, optionally filtered
  stats                  show the dashboard totals
  add [flags]            add a record
  edit <id> [flags]      change a record
  delete <id> [-y]       delete a record
  receipt <id>           show a receipt (--print, --html FILE)
`

type app struct {
	cfg     *config.Config
	session *client.Session
	ctrl    *dashboard.Controller
	in      *bufio.Reader
}

func main() {
	flags := pflag.CommandLine
	flags.SetInterspersed(false)
	flags.String("api", "", "record store base URL (default from API_BASE_URL)")
	flags.String("session", "", "session file (default from SESSION_FILE)")
	flags.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	pflag.Parse()

	_ = viper.BindPFlag("API_BASE_URL", flags.Lookup("api"))
	_ = viper.BindPFlag("SESSION_FILE", flags.Lookup("session"))
	cfg := config.Load()

	args := pflag.Args()
	if len(args) == 0 {
		flags.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := a.run(ctx, args[0], args[1:]); err != nil {
		switch {
		case errors.Is(err, apperror.ErrUnauthorized):
			fmt.Fprintln(os.Stderr, "please login first")
		case notified(err):
		case apperror.IsAppError(err):
			fmt.Fprintln(os.Stderr, apperror.GetAppError(err).Message)
		default:
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// notified reports whether the dashboard already told the operator about err
func notified(err error) bool {
	for _, shown := range []error{
		apperror.ErrMissingField,
		apperror.ErrInvalidCnic,
		apperror.ErrNetworkFailure,
		apperror.ErrAuthFailure,
	} {
		if errors.Is(err, shown) {
			return true
		}
	}
	return false
}

func newApp(cfg *config.Config) (*app, error) {
	basis, err := ledger.ParseSalesBasis(cfg.Ledger.SalesBasis)
	if err != nil {
		return nil, err
	}
	receiptOpts, err := receipt.NewOptions(entity.ReceiptHeader{
		ShopName: cfg.Shop.Name,
		Address:  cfg.Shop.Address,
		Phone:    cfg.Shop.Phone,
	}, cfg.Ledger.GrandTotal, cfg.Shop.Footer)
	if err != nil {
		return nil, err
	}

	session, err := client.LoadSession(cfg.Client.SessionFile)
	if err != nil {
		return nil, err
	}
	store := client.New(cfg.Client.APIBaseURL, session)
	notifier := dashboard.WriterNotifier{Out: os.Stdout, Err: os.Stderr}

	ctrl := dashboard.NewController(store, store, session, notifier, dashboard.Options{
		Validator: ledger.Validator{RequirePrice: cfg.Ledger.RequirePrice},
		Basis:     basis,
		Receipt:   receiptOpts,
		Width:     cfg.Printer.Width,
	})
	return &app{cfg: cfg, session: session, ctrl: ctrl, in: bufio.NewReader(os.Stdin)}, nil
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "logout":
		a.ctrl.Logout()
		return a.session.Save(a.cfg.Client.SessionFile)
	case "list":
		return a.list(ctx, args)
	case "stats":
		return a.stats(ctx)
	case "add":
		return a.add(ctx, args)
	case "edit":
		return a.edit(ctx, args)
	case "delete":
		return a.delete(ctx, args)
	case "receipt":
		return a.receipt(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	}
	return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
}

func (a *app) prompt(question string) string {
	fmt.Print(question)
	line, _ := a.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func (a *app) confirm(question string) bool {
	answer := strings.ToLower(a.prompt(question + " [y/N] "))
	return answer == "y" || answer == "yes"
}
