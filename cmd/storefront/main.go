// Command storefront is a CLI client for the ecommerce-eks shop: browse the
// catalog, manage a local cart, sign in and check out.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/ecommerce-eks/storefront/internal/api"
	"github.com/ecommerce-eks/storefront/internal/cart"
	"github.com/ecommerce-eks/storefront/internal/checkout"
	"github.com/ecommerce-eks/storefront/internal/config"
	"github.com/ecommerce-eks/storefront/internal/model"
	"github.com/ecommerce-eks/storefront/internal/session"
	"github.com/ecommerce-eks/storefront/internal/storage"
)

// app bundles the stores and clients, constructed once per run and passed to
// command handlers. No package-level state.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	cart      *cart.Store
	session   *session.Store
	products  *api.Products
	orders    *api.Orders
	inventory *api.Inventory
	checkout  *checkout.Service
}

func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	st, err := storage.NewFile(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	creds := session.NewCredentials(st)
	users := api.NewUsers(cfg.UsersURL, cfg.RequestTimeout, creds, log)
	products := api.NewProducts(cfg.ProductsURL, cfg.RequestTimeout, creds, log)
	orders := api.NewOrders(cfg.OrdersURL, cfg.RequestTimeout, creds, log)
	inventory := api.NewInventory(cfg.InventoryURL, cfg.RequestTimeout, creds, log)

	c := cart.New(st, log)
	sess := session.New(st, users, log, session.WithInitTimeout(cfg.AuthTimeout))

	return &app{
		cfg:       cfg,
		log:       log,
		cart:      c,
		session:   sess,
		products:  products,
		orders:    orders,
		inventory: inventory,
		checkout:  checkout.New(orders, c, log),
	}, nil
}

// currentUser resolves the session and fails the command when nobody is
// signed in.
func (a *app) currentUser(ctx context.Context) model.User {
	a.session.Initialize(ctx)
	u, ok := a.session.Current()
	if !ok {
		fmt.Fprintln(os.Stderr, "not logged in")
		os.Exit(1)
	}
	return u
}

func usage() {
	fmt.Fprintf(os.Stderr, `storefront CLI
Usage:
  storefront [-v] <cmd> [args]

Commands:
  version
  register  -email E -password P -name N [-street -city -state -zip -country]
  login     -email E -password P
  logout
  whoami
  products  [-search S] [-category C]
  product   -id ID
  stock     -id ID
  add       -id ID [-qty N]
  rm        -id ID
  qty       -id ID -n N
  cart
  clear
  checkout  -card NUM -month MM -year YYYY -cvv CVV [-currency USD]
  orders
  order     -id ID
`)
	os.Exit(2)
}

var (
	version   = "dev"
	buildDate = "unknown"
)

// main dispatches subcommands over the wired app.
func main() {
	verbose := flag.Bool("v", false, "debug logging to stderr")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	log := zap.NewNop()
	if *verbose {
		log, _ = zap.NewDevelopment()
	}
	defer func() { _ = log.Sync() }()

	if cmd == "version" {
		fmt.Printf("storefront %s (%s)\n", version, buildDate)
		return
	}

	a, err := newApp(config.Load(), log)
	if err != nil {
		fail(err)
	}
	ctx := context.Background()

	switch cmd {
	case "register":
		cmdRegister(ctx, a, args)
	case "login":
		cmdLogin(ctx, a, args)
	case "logout":
		a.session.Logout()
		fmt.Println("ok")
	case "whoami":
		printJSON(a.currentUser(ctx))
	case "products":
		cmdProducts(ctx, a, args)
	case "product":
		cmdProduct(ctx, a, args)
	case "stock":
		cmdStock(ctx, a, args)
	case "add":
		cmdAdd(ctx, a, args)
	case "rm":
		cmdRemove(a, args)
	case "qty":
		cmdQuantity(a, args)
	case "cart":
		cmdShowCart(a)
	case "clear":
		if err := a.cart.Clear(); err != nil {
			fail(err)
		}
		fmt.Println("ok")
	case "checkout":
		cmdCheckout(ctx, a, args)
	case "orders":
		cmdOrders(ctx, a)
	case "order":
		cmdOrder(ctx, a, args)
	default:
		usage()
	}
}

// ---- helpers ----

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// filterProducts applies the view-layer search/category narrowing: search
// matches name or description case-insensitively, category matches exactly.
func filterProducts(list []model.Product, search, category string) []model.Product {
	out := make([]model.Product, 0, len(list))
	q := strings.ToLower(search)
	for _, p := range list {
		if category != "" && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}
