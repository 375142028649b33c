package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/anhqhe/orderfood/internal/api"
	"github.com/anhqhe/orderfood/internal/app"
	"github.com/anhqhe/orderfood/internal/cart"
	"github.com/anhqhe/orderfood/internal/catalog"
	"github.com/anhqhe/orderfood/internal/config"
	"github.com/anhqhe/orderfood/internal/domain"
	apperrors "github.com/anhqhe/orderfood/internal/errors"
	"github.com/anhqhe/orderfood/internal/logging"
	"github.com/anhqhe/orderfood/internal/session"
	"github.com/anhqhe/orderfood/internal/storage"
)

const usage = `Usage: orderfood <command> [flags]

Commands:
  login        Sign in with email and password
  register     Create a new account
  logout       Sign out and clear stored credentials
  whoami       Show the current session
  foods        Browse the food catalog
  categories   List catalog categories
  order        Place an order
  my-orders    Show your order history
  admin        Administrative commands (stats, foods, add-food,
               update-food, delete-food, orders, set-status)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	svc, err := buildService(cfg)
	if err != nil {
		slog.Error("Failed to initialise", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.HTTPTimeout)
	defer cancel()

	if err := run(ctx, svc, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, apperrors.DisplayMessage(err))
		slog.Debug("Command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func buildService(cfg *config.Config) (*app.Service, error) {
	var cipher storage.Cipher = storage.NoopCipher{}
	if cfg.CredentialsKey != "" {
		c, err := storage.NewAESGCMCipher(cfg.CredentialsKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create credentials cipher: %w", err)
		}
		cipher = c
	}

	creds := storage.NewCredentialFile(cfg.DataDir, cipher)
	users := storage.NewUserFile(cfg.DataDir)

	// The client and the session reference each other: the client reads the
	// session's token, and a 401 response invalidates the session.
	var sess *session.Manager
	client := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithTokenSource(func() string { return sess.Token() }),
		api.WithUnauthorizedHook(func() { sess.Invalidate() }),
	)
	sess = session.NewManager(client, creds, users)
	sess.Restore()

	basket := cart.New(client)
	cache := catalog.NewCache(client, clockwork.NewRealClock(), catalog.DefaultTTL)

	return app.NewService(sess, basket, cache, client, client), nil
}

func run(ctx context.Context, svc *app.Service, command string, args []string) error {
	switch command {
	case "login":
		return cmdLogin(ctx, svc, args)
	case "register":
		return cmdRegister(ctx, svc, args)
	case "logout":
		return cmdLogout(svc)
	case "whoami":
		return cmdWhoami(svc)
	case "foods":
		return cmdFoods(ctx, svc, args)
	case "categories":
		return cmdCategories(ctx, svc)
	case "order":
		return cmdOrder(ctx, svc, args)
	case "my-orders":
		return cmdMyOrders(ctx, svc)
	case "admin":
		return cmdAdmin(ctx, svc, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func cmdLogin(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	user, err := svc.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func cmdRegister(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	phone := fs.String("phone", "", "phone number")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	user, err := svc.Register(ctx, *name, *email, *phone, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Account created for %s <%s>\n", user.Name, user.Email)
	return nil
}

func cmdLogout(svc *app.Service) error {
	if err := svc.Logout(); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}

func cmdWhoami(svc *app.Service) error {
	snap := svc.Session().Snapshot()
	if !snap.Authenticated() {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", snap.User.Name, snap.User.Email, snap.User.Role)
	return nil
}

func cmdFoods(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("foods", flag.ExitOnError)
	category := fs.String("category", "", "filter by category")
	fs.Parse(args)

	foods, err := svc.BrowseFoods(ctx, *category)
	if err != nil {
		return err
	}
	if len(foods) == 0 {
		fmt.Println("No foods available")
		return nil
	}
	for _, f := range foods {
		fmt.Printf("%-36s  %-20s  %10s  %s\n", f.ID, f.Name, formatPrice(f.Price), f.Category)
	}
	return nil
}

func cmdCategories(ctx context.Context, svc *app.Service) error {
	categories, err := svc.Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Println(c)
	}
	return nil
}

// itemsFlag collects repeated -item id:quantity values.
type itemsFlag []domain.OrderItem

func (f *itemsFlag) String() string {
	parts := make([]string, len(*f))
	for i, it := range *f {
		parts[i] = fmt.Sprintf("%s:%d", it.FoodID, it.Quantity)
	}
	return strings.Join(parts, ",")
}

func (f *itemsFlag) Set(value string) error {
	id, qtyStr, found := strings.Cut(value, ":")
	qty := 1
	if found {
		var err error
		qty, err = strconv.Atoi(qtyStr)
		if err != nil || qty < 1 {
			return fmt.Errorf("invalid quantity in %q", value)
		}
	}
	if id == "" {
		return fmt.Errorf("missing food id in %q", value)
	}
	*f = append(*f, domain.OrderItem{FoodID: id, Quantity: qty})
	return nil
}

func cmdOrder(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	var items itemsFlag
	fs.Var(&items, "item", "food to order as id:quantity (repeatable)")
	address := fs.String("address", "", "delivery address")
	note := fs.String("note", "", "delivery note")
	fs.Parse(args)

	if len(items) == 0 {
		return apperrors.ValidationError("At least one -item is required.")
	}

	foods, err := svc.BrowseFoods(ctx, "")
	if err != nil {
		return err
	}
	byID := make(map[string]domain.Food, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}

	basket := svc.Cart()
	for _, it := range items {
		food, ok := byID[it.FoodID]
		if !ok {
			return apperrors.NotFoundError(fmt.Sprintf("Food %q was not found.", it.FoodID))
		}
		for i := 0; i < it.Quantity; i++ {
			basket.AddItem(food)
		}
	}

	fmt.Printf("Cart: %d items, total %s\n", basket.TotalItems(), formatPrice(basket.TotalPrice()))

	order, err := svc.PlaceOrder(ctx, *address, *note)
	if err != nil {
		return err
	}
	fmt.Printf("Order %s placed, status %s, total %s\n", order.ID, order.Status, formatPrice(order.Total))
	return nil
}

func cmdMyOrders(ctx context.Context, svc *app.Service) error {
	orders, err := svc.MyOrders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("No orders yet")
		return nil
	}
	printOrders(orders)
	return nil
}

func cmdAdmin(ctx context.Context, svc *app.Service, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("admin requires a subcommand (stats, foods, add-food, update-food, delete-food, orders, set-status)")
	}
	switch args[0] {
	case "stats":
		return cmdAdminStats(ctx, svc)
	case "foods":
		return cmdAdminFoods(ctx, svc)
	case "add-food":
		return cmdAdminAddFood(ctx, svc, args[1:])
	case "update-food":
		return cmdAdminUpdateFood(ctx, svc, args[1:])
	case "delete-food":
		return cmdAdminDeleteFood(ctx, svc, args[1:])
	case "orders":
		return cmdAdminOrders(ctx, svc)
	case "set-status":
		return cmdAdminSetStatus(ctx, svc, args[1:])
	default:
		return fmt.Errorf("unknown admin subcommand %q", args[0])
	}
}

func cmdAdminStats(ctx context.Context, svc *app.Service) error {
	stats, err := svc.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Orders:  %d\n", stats.TotalOrders)
	fmt.Printf("Foods:   %d\n", stats.TotalFoods)
	fmt.Printf("Users:   %d\n", stats.TotalUsers)
	fmt.Printf("Revenue: %s\n", formatPrice(stats.TotalRevenue))
	for _, status := range domain.Statuses() {
		if n := stats.OrdersByStatus[status]; n > 0 {
			fmt.Printf("  %-12s %d\n", status, n)
		}
	}
	return nil
}

func cmdAdminFoods(ctx context.Context, svc *app.Service) error {
	foods, err := svc.AllFoods(ctx)
	if err != nil {
		return err
	}
	for _, f := range foods {
		availability := "available"
		if !f.IsAvailable {
			availability = "unavailable"
		}
		fmt.Printf("%-36s  %-20s  %10s  %-12s  %s\n", f.ID, f.Name, formatPrice(f.Price), f.Category, availability)
	}
	return nil
}

func foodInputFlags(fs *flag.FlagSet) func() domain.FoodInput {
	name := fs.String("name", "", "food name")
	description := fs.String("description", "", "food description")
	price := fs.Float64("price", 0, "price")
	image := fs.String("image", "", "image URL")
	category := fs.String("category", "", "category")
	available := fs.Bool("available", true, "whether the food can be ordered")

	// Only flags the caller actually set become part of the input, so
	// updates stay partial.
	return func() domain.FoodInput {
		var input domain.FoodInput
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "name":
				input.Name = name
			case "description":
				input.Description = description
			case "price":
				input.Price = price
			case "image":
				input.Image = image
			case "category":
				input.Category = category
			case "available":
				input.IsAvailable = available
			}
		})
		return input
	}
}

func cmdAdminAddFood(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("add-food", flag.ExitOnError)
	collect := foodInputFlags(fs)
	fs.Parse(args)

	food, err := svc.CreateFood(ctx, collect())
	if err != nil {
		return err
	}
	fmt.Printf("Created %s (%s)\n", food.Name, food.ID)
	return nil
}

func cmdAdminUpdateFood(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("update-food", flag.ExitOnError)
	id := fs.String("id", "", "food id")
	collect := foodInputFlags(fs)
	fs.Parse(args)

	food, err := svc.UpdateFood(ctx, *id, collect())
	if err != nil {
		return err
	}
	fmt.Printf("Updated %s (%s)\n", food.Name, food.ID)
	return nil
}

func cmdAdminDeleteFood(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("delete-food", flag.ExitOnError)
	id := fs.String("id", "", "food id")
	fs.Parse(args)

	if err := svc.DeleteFood(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", *id)
	return nil
}

func cmdAdminOrders(ctx context.Context, svc *app.Service) error {
	orders, err := svc.AllOrders(ctx)
	if err != nil {
		return err
	}
	printOrders(orders)
	return nil
}

func cmdAdminSetStatus(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("set-status", flag.ExitOnError)
	id := fs.String("id", "", "order id")
	status := fs.String("status", "", "new status")
	fs.Parse(args)

	order, err := svc.SetOrderStatus(ctx, *id, domain.OrderStatus(*status))
	if err != nil {
		return err
	}
	fmt.Printf("Order %s is now %s\n", order.ID, order.Status)
	return nil
}

func printOrders(orders []domain.Order) {
	for _, o := range orders {
		items := 0
		for _, it := range o.Items {
			items += it.Quantity
		}
		fmt.Printf("%-36s  %-12s  %10s  %2d items  %s\n",
			o.ID, o.Status, formatPrice(o.Total), items, o.CreatedAt.Local().Format(time.DateTime))
	}
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " VND"
}
