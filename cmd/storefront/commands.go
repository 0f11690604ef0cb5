// cmd/storefront/commands.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ecommerce-eks/storefront/internal/model"
)

// cmdRegister creates an account and signs in with it.
func cmdRegister(ctx context.Context, a *app, args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	name := fs.String("name", "", "full name")
	street := fs.String("street", "", "street")
	city := fs.String("city", "", "city")
	state := fs.String("state", "", "state")
	zip := fs.String("zip", "", "postal code")
	country := fs.String("country", "", "country")
	_ = fs.Parse(args)

	if *email == "" || *password == "" || *name == "" {
		fmt.Fprintln(os.Stderr, "need -email, -password and -name")
		os.Exit(1)
	}
	user, err := a.session.Register(ctx, model.Registration{
		Email:      *email,
		Password:   *password,
		FullName:   *name,
		Street:     *street,
		City:       *city,
		State:      *state,
		PostalCode: *zip,
		Country:    *country,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("registered and logged in as %s (id %d)\n", user.Email, user.ID)
}

func cmdLogin(ctx context.Context, a *app, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "need -email and -password")
		os.Exit(1)
	}
	user, err := a.session.Login(ctx, *email, *password)
	if err != nil {
		fail(err)
	}
	fmt.Printf("logged in as %s (id %d)\n", user.Email, user.ID)
}

func cmdProducts(ctx context.Context, a *app, args []string) {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	search := fs.String("search", "", "match name/description")
	category := fs.String("category", "", "exact category")
	_ = fs.Parse(args)

	list, err := a.products.List(ctx)
	if err != nil {
		fail(err)
	}
	list = filterProducts(list, *search, *category)
	for _, p := range list {
		fmt.Printf("%-12s %-30s %8s  stock=%d\n", p.ID, p.Name, money(p.Price), p.Stock)
	}
	fmt.Printf("%d product(s)\n", len(list))
}

func cmdProduct(ctx context.Context, a *app, args []string) {
	id := requireID("product", args)
	p, err := a.products.Get(ctx, id)
	if err != nil {
		fail(err)
	}
	printJSON(p)
}

func cmdStock(ctx context.Context, a *app, args []string) {
	id := requireID("stock", args)
	item, err := a.inventory.Get(ctx, id)
	if err != nil {
		fail(err)
	}
	fmt.Printf("%s: %d in stock\n", item.ProductID, item.Quantity)
}

// cmdAdd fetches the product so the cart holds a current snapshot, then adds
// it.
func cmdAdd(ctx context.Context, a *app, args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	id := fs.String("id", "", "product id")
	qty := fs.Int("qty", 1, "quantity")
	_ = fs.Parse(args)
	if *id == "" {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}

	p, err := a.products.Get(ctx, *id)
	if err != nil {
		fail(err)
	}
	if err := a.cart.Add(p, *qty); err != nil {
		fail(err)
	}
	fmt.Printf("added %dx %s, cart has %d item(s)\n", *qty, p.Name, a.cart.TotalItems())
}

func cmdRemove(a *app, args []string) {
	id := requireID("rm", args)
	if err := a.cart.Remove(id); err != nil {
		fail(err)
	}
	fmt.Println("ok")
}

func cmdQuantity(a *app, args []string) {
	fs := flag.NewFlagSet("qty", flag.ExitOnError)
	id := fs.String("id", "", "product id")
	n := fs.Int("n", -1, "new quantity (0 removes)")
	_ = fs.Parse(args)
	if *id == "" || *n < 0 {
		fmt.Fprintln(os.Stderr, "need -id and -n")
		os.Exit(1)
	}
	if err := a.cart.SetQuantity(*id, *n); err != nil {
		fail(err)
	}
	fmt.Println("ok")
}

func cmdShowCart(a *app) {
	lines := a.cart.Lines()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, l := range lines {
		fmt.Printf("%-12s %-30s %3d x %8s = %8s\n",
			l.Product.ID, l.Product.Name, l.Quantity,
			money(l.Product.Price), money(float64(l.Quantity)*l.Product.Price))
	}
	fmt.Printf("total: %d item(s), %s\n", a.cart.TotalItems(), money(a.cart.TotalPrice()))
}

func cmdCheckout(ctx context.Context, a *app, args []string) {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	card := fs.String("card", "", "card number")
	month := fs.Int("month", 0, "expiry month")
	year := fs.Int("year", 0, "expiry year")
	cvv := fs.String("cvv", "", "cvv")
	currency := fs.String("currency", "USD", "currency")
	_ = fs.Parse(args)
	if *card == "" || *cvv == "" || *month == 0 || *year == 0 {
		fmt.Fprintln(os.Stderr, "need -card, -month, -year and -cvv")
		os.Exit(1)
	}

	user := a.currentUser(ctx)
	order, err := a.checkout.PlaceOrder(ctx, user.ID, model.PaymentDetails{
		Currency:    *currency,
		CardNumber:  *card,
		ExpiryMonth: *month,
		ExpiryYear:  *year,
		CVV:         *cvv,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("order %d placed (%s)\n", order.ID, order.Status)
}

func cmdOrders(ctx context.Context, a *app) {
	user := a.currentUser(ctx)
	orders, err := a.orders.ListForUser(ctx, user.ID)
	if err != nil {
		fail(err)
	}
	for _, o := range orders {
		fmt.Printf("%-8d %-12s %s  %d item(s)\n", o.ID, o.Status, o.CreatedAt, len(o.Items))
	}
	fmt.Printf("%d order(s)\n", len(orders))
}

func cmdOrder(ctx context.Context, a *app, args []string) {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	id := fs.Int64("id", 0, "order id")
	_ = fs.Parse(args)
	if *id == 0 {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}
	o, err := a.orders.Get(ctx, *id)
	if err != nil {
		fail(err)
	}
	printJSON(o)
}

// requireID parses the single -id flag common to several commands.
func requireID(name string, args []string) string {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	id := fs.String("id", "", "product id")
	_ = fs.Parse(args)
	if *id == "" {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}
	return *id
}
