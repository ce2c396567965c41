package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/client"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/identity"
	"github.com/nikolayk812/storefront/internal/session"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const usage = `Usage: storefront-cart [flags] <command> [args]

Commands:
  show                 fetch the cart and print it with its total (default)
  remove <productId>   remove a product from the cart
  checkout             place one order per cart product
  save-token <token>   store the credential token used by checkout
  forget-token         delete the stored credential token

Flags:
`

type options struct {
	api         string
	userID      string
	tokenFile   string
	timeout     time.Duration
	currency    string
	compensate  bool
	rejectEmpty bool
	increment   []string
	decrement   []string
	logLevel    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "storefront-cart: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	var opts options

	fs := pflag.NewFlagSet("storefront-cart", pflag.ContinueOnError)
	fs.StringVar(&opts.api, "api", "http://localhost:8080", "storefront API base url")
	fs.StringVarP(&opts.userID, "user", "u", "", "user whose cart is shown")
	fs.StringVar(&opts.tokenFile, "token-file", defaultTokenFile(), "file holding the credential token")
	fs.DurationVar(&opts.timeout, "timeout", 30*time.Second, "timeout of each API request")
	fs.StringVar(&opts.currency, "currency", "INR", "currency of prices the API sends without one")
	fs.BoolVar(&opts.compensate, "compensate", false, "cancel created orders when checkout partially fails")
	fs.BoolVar(&opts.rejectEmpty, "reject-empty", false, "fail checkout of an empty cart")
	fs.StringSliceVar(&opts.increment, "inc", nil, "product ids to increment before show or checkout, repeatable")
	fs.StringSliceVar(&opts.decrement, "dec", nil, "product ids to decrement before show or checkout, repeatable")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	command := "show"
	if fs.NArg() > 0 {
		command = fs.Arg(0)
	}

	store, err := identity.NewFileStore(opts.tokenFile)
	if err != nil {
		return fmt.Errorf("identity.NewFileStore: %w", err)
	}

	switch command {
	case "save-token":
		if fs.NArg() != 2 {
			return errors.New("save-token needs exactly one token")
		}
		if _, err := identity.Decode(fs.Arg(1)); err != nil {
			return fmt.Errorf("identity.Decode: %w", err)
		}
		return store.Save(fs.Arg(1))
	case "forget-token":
		return store.Clear()
	}

	logger, err := config.NewLogger(opts.logLevel)
	if err != nil {
		return fmt.Errorf("config.NewLogger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if opts.userID == "" {
		id, err := identity.NewTokenProvider(store).Identity(ctx)
		if err != nil {
			return fmt.Errorf("--user is empty and no stored identity: %w", err)
		}
		opts.userID = id.UserID
	}

	unit, err := currency.ParseISO(opts.currency)
	if err != nil {
		return fmt.Errorf("currency[%s] is not valid: %w", opts.currency, err)
	}

	api, err := client.New(opts.api, client.WithTimeout(opts.timeout), client.WithCurrency(unit))
	if err != nil {
		return fmt.Errorf("client.New: %w", err)
	}

	checkoutOpts := []checkout.Option{checkout.WithLogger(logger)}
	if opts.compensate {
		checkoutOpts = append(checkoutOpts, checkout.WithCompensation())
	}
	if opts.rejectEmpty {
		checkoutOpts = append(checkoutOpts, checkout.WithRejectEmptyCart())
	}

	s := session.New(opts.userID, api,
		checkout.New(api, identity.NewTokenProvider(store), checkoutOpts...),
		session.WithLogger(logger),
		session.WithNavigator(session.NavigatorFunc(func(path string) {
			fmt.Fprintf(out, "next: %s\n", path)
		})),
		session.WithPublisher(session.PublisherFunc(func(ids []uuid.UUID) {
			logger.Debug("cart products", zap.Int("count", len(ids)))
		})),
	)

	if err := s.Load(ctx); err != nil {
		fmt.Fprintln(out, s.Message())
		return err
	}

	if err := adjust(s, opts.increment, s.Increment); err != nil {
		return err
	}
	if err := adjust(s, opts.decrement, s.Decrement); err != nil {
		return err
	}

	switch command {
	case "show":
		printCart(out, s)
		return nil

	case "remove":
		if fs.NArg() != 2 {
			return errors.New("remove needs exactly one product id")
		}
		productID, err := uuid.Parse(fs.Arg(1))
		if err != nil {
			return fmt.Errorf("product id[%s] is not valid: %w", fs.Arg(1), err)
		}

		err = s.Remove(ctx, productID)
		fmt.Fprintln(out, s.Message())
		if err != nil {
			return err
		}
		printCart(out, s)
		return nil

	case "checkout":
		printCart(out, s)

		report, err := s.PlaceOrder(ctx)
		if msg := s.Message(); msg != "" {
			fmt.Fprintln(out, msg)
		}
		if err != nil {
			return err
		}
		for _, res := range report.Results {
			fmt.Fprintf(out, "  %s  status=%d  succeeded=%t\n", res.ProductID, res.StatusCode, res.Succeeded())
		}
		if !report.Succeeded() {
			return fmt.Errorf("%d of %d items failed", len(report.Failed()), len(report.Results))
		}
		return nil

	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func adjust(s *session.Session, ids []string, fn func(uuid.UUID)) error {
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("product id[%s] is not valid: %w", raw, err)
		}
		fn(id)
	}
	return nil
}

func printCart(out io.Writer, s *session.Session) {
	for _, entry := range s.Entries() {
		fmt.Fprintf(out, "seller %s\n", entry.ID)
		for _, p := range entry.Products {
			fmt.Fprintf(out, "  %s  %-30s %s x %d\n", p.ID, p.Name, p.Price, p.Count)
		}
	}
	fmt.Fprintf(out, "total: %s\n", s.Total())
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront-token"
	}
	return filepath.Join(home, ".storefront", "token")
}
