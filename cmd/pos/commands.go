package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	"github.com/sangkips/mobilehub-pos/internal/domain/enum"
	"github.com/sangkips/mobilehub-pos/internal/ledger"
	"github.com/sangkips/mobilehub-pos/internal/receipt"
	"github.com/sangkips/mobilehub-pos/pkg/apperror"
	"github.com/sangkips/mobilehub-pos/pkg/printer"
	"github.com/spf13/pflag"
)

func (a *app) login(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	password := fs.StringP("password", "p", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: pos login <email>")
	}
	if *password == "" {
		*password = a.prompt("Password: ")
	}

	if err := a.ctrl.Login(ctx, fs.Arg(0), *password); err != nil && !a.session.Authenticated() {
		return err
	}
	return a.session.Save(a.cfg.Client.SessionFile)
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	query := fs.StringP("query", "q", "", "filter by name, phone, cnic, model or imei")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.ctrl.Load(ctx); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tNAME\tPHONE\tMODEL\tPRICE\tPAID\tREMAINING")
	for _, r := range a.ctrl.Search(*query) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Date, r.Type, r.Name, r.Phone, r.Model, r.Price, r.PaidAmount, r.RemainingAmount)
	}
	return w.Flush()
}

func (a *app) stats(ctx context.Context) error {
	if err := a.ctrl.Load(ctx); err != nil {
		return err
	}
	return writeStats(os.Stdout, a.ctrl.Summary())
}

func writeStats(out io.Writer, s ledger.Summary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total Customers\t%d\n", s.CustomerCount)
	fmt.Fprintf(w, "Sales / Purchases\t%d / %d\n", s.InvoiceCount, s.PurchaseCount)
	fmt.Fprintf(w, "Total Sales (%s)\t%s\n", s.SalesBasis, receipt.Amount(s.TotalSales))
	fmt.Fprintf(w, "Received Cash\t%s\n", receipt.Amount(s.TotalReceivedCash))
	fmt.Fprintf(w, "Total Purchases\t%s\n", receipt.Amount(s.TotalPurchasesValue))
	fmt.Fprintf(w, "Outstanding Balance\t%s\n", receipt.Amount(s.OutstandingBalance))
	return w.Flush()
}

// recordFlags registers the form fields on fs, pre-filled from draft
func recordFlags(fs *pflag.FlagSet, draft *entity.Record) *string {
	fs.StringVar(&draft.Name, "name", draft.Name, "customer name")
	fs.StringVar(&draft.Phone, "phone", draft.Phone, "phone number")
	fs.StringVar(&draft.CNIC, "cnic", draft.CNIC, "13-digit CNIC")
	fs.StringVar(&draft.Model, "model", draft.Model, "device model")
	fs.StringVar(&draft.EMI, "imei", draft.EMI, "device IMEI")
	fs.StringVar(&draft.Price, "price", draft.Price, "price")
	fs.StringVar(&draft.PaidAmount, "paid", draft.PaidAmount, "cash paid")
	fs.StringVar(&draft.Date, "date", draft.Date, "date (YYYY-MM-DD)")
	return fs.String("type", draft.Type.String(), "Sale or Purchase")
}

func applyType(draft *entity.Record, typ string) error {
	t, err := enum.ParseRecordType(typ)
	if err != nil {
		return err
	}
	draft.Type = t
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	draft := a.ctrl.NewDraft()
	fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
	typ := recordFlags(fs, &draft)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := applyType(&draft, *typ); err != nil {
		return err
	}

	saved, err := a.ctrl.Submit(ctx, draft, uuid.Nil)
	if err != nil {
		return err
	}
	fmt.Printf("%s  remaining %s\n", receipt.InvoiceNumber(saved.ID), receipt.Amount(ledger.ParseAmount(saved.RemainingAmount)))
	return nil
}

func (a *app) edit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: pos edit <id> [flags]")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return apperror.NewBadRequestError("Invalid ID format")
	}
	if err := a.ctrl.Load(ctx); err != nil {
		return err
	}
	draft, err := a.ctrl.Edit(id)
	if err != nil {
		return err
	}

	fs := pflag.NewFlagSet("edit", pflag.ContinueOnError)
	typ := recordFlags(fs, &draft)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if err := applyType(&draft, *typ); err != nil {
		return err
	}

	_, err = a.ctrl.Submit(ctx, draft, id)
	return err
}

func (a *app) delete(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("delete", pflag.ContinueOnError)
	yes := fs.BoolP("yes", "y", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: pos delete <id> [-y]")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return apperror.NewBadRequestError("Invalid ID format")
	}

	confirm := a.confirm
	if *yes {
		confirm = func(string) bool { return true }
	}
	_, err = a.ctrl.Delete(ctx, id, confirm)
	return err
}

func (a *app) receipt(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("receipt", pflag.ContinueOnError)
	toPrinter := fs.Bool("print", false, "send to the configured thermal printer")
	htmlPath := fs.String("html", "", "write a printable HTML receipt to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: pos receipt <id> [--print] [--html FILE]")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return apperror.NewBadRequestError("Invalid ID format")
	}
	if err := a.ctrl.Load(ctx); err != nil {
		return err
	}

	if *toPrinter {
		p, err := printer.New(printer.Config{
			Type:    a.cfg.Printer.Type,
			USBPath: a.cfg.Printer.USBPath,
			Address: a.cfg.Printer.Address,
		})
		if err != nil {
			return err
		}
		defer p.Close()
		if _, err := a.ctrl.Print(ctx, id, p); err != nil {
			return fmt.Errorf("printing failed: %w", err)
		}
		fmt.Println("Receipt sent to printer")
		return nil
	}

	r, err := a.ctrl.Receipt(id)
	if err != nil {
		return err
	}
	if *htmlPath != "" {
		f, err := os.Create(*htmlPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := receipt.RenderHTML(f, r); err != nil {
			return err
		}
		fmt.Printf("Receipt written to %s\n", *htmlPath)
		return nil
	}

	width := a.cfg.Printer.Width
	if width <= 0 {
		width = printer.Width58mm
	}
	fmt.Print(receipt.RenderText(r, width))
	return nil
}
