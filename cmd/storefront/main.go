// Command storefront is a small terminal client over the storefront SDK:
// browse the catalog, inspect product pricing, manage the cart, and check
// out.
package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/aigerim-zh/kshop/pkg/storefront/api"
	"github.com/aigerim-zh/kshop/pkg/storefront/cache"
	"github.com/aigerim-zh/kshop/pkg/storefront/cart"
	"github.com/aigerim-zh/kshop/pkg/storefront/product"
	"github.com/aigerim-zh/kshop/pkg/storefront/session"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	baseURL := os.Getenv("KSHOP_API")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	sessionPath, err := session.DefaultPath()
	if err != nil {
		log.Fatalf("session path: %v", err)
	}

	client := api.NewClient(baseURL)
	store := session.NewStore(client, sessionPath)
	client.SetTokenSource(store)
	client.SetUnauthorizedHook(store.HandleUnauthorized)

	ctx := context.Background()
	data := cache.New()

	// Session restore happens before every command; a rejected token just
	// leaves us unauthenticated.
	if _, err := store.Restore(ctx); err != nil {
		log.Fatalf("restore session: %v", err)
	}

	switch os.Args[1] {
	case "login":
		requireArgs(4, "login <email> <password>")
		user, err := store.Login(ctx, os.Args[2], os.Args[3])
		if err != nil {
			fail(err)
		}
		fmt.Printf("logged in as %s %s <%s>\n", user.FirstName, user.LastName, user.Email)

	case "register":
		requireArgs(6, "register <email> <password> <first-name> <last-name>")
		if _, err := client.Register(ctx, os.Args[2], os.Args[3], os.Args[4], os.Args[5]); err != nil {
			fail(err)
		}
		// Registration does not authenticate; log in with the new account.
		user, err := store.Login(ctx, os.Args[2], os.Args[3])
		if err != nil {
			fail(err)
		}
		fmt.Printf("registered and logged in as %s\n", user.Email)

	case "logout":
		store.Logout()
		fmt.Println("logged out")

	case "whoami":
		user := store.Current()
		if user == nil {
			fmt.Println("not logged in")
			return
		}
		fmt.Printf("%s %s <%s>\n", user.FirstName, user.LastName, user.Email)

	case "categories":
		categories, err := client.ArtistCategories(ctx)
		if err != nil {
			fail(err)
		}
		for _, c := range categories {
			fmt.Println(c)
		}

	case "artist":
		requireArgs(3, "artist <id>")
		id := parseID(os.Args[2])
		artist, err := client.GetArtist(ctx, id)
		if err != nil {
			fail(err)
		}
		albums, err := client.ArtistAlbums(ctx, id, "", 1, 50)
		if err != nil {
			fail(err)
		}
		fmt.Printf("%s [%s]\n", artist.Name, artist.Category)
		for _, album := range albums.Albums {
			fmt.Printf("  %s  %-30s %s  %8.2f\n", album.ID, album.Title, album.ReleaseDate.Format("2006-01-02"), album.BasePrice.Float64())
		}

	case "albums":
		page := 1
		if len(os.Args) > 2 {
			page, _ = strconv.Atoi(os.Args[2])
		}
		key := cache.Key("albums", "", url.Values{"page": {strconv.Itoa(page)}})
		list, err := cache.Get(ctx, data, key, func(ctx context.Context) (*api.AlbumList, error) {
			return client.ListAlbums(ctx, page, 20)
		})
		if err != nil {
			fail(err)
		}
		for _, album := range list.Albums {
			fmt.Printf("%s  %-30s %-20s %8.2f\n", album.ID, album.Title, album.ArtistName, album.BasePrice.Float64())
		}
		fmt.Printf("page %d (%d total)\n", list.Page, list.Total)

	case "album":
		requireArgs(3, "album <id>")
		id := parseID(os.Args[2])
		album, err := cache.Get(ctx, data, cache.Key("album", id.String(), nil), func(ctx context.Context) (*api.Album, error) {
			return client.GetAlbum(ctx, id)
		})
		if err != nil {
			fail(err)
		}
		discounts, err := client.AlbumDiscounts(ctx, id)
		if err != nil {
			fail(err)
		}

		fmt.Printf("%s — %s [%s]\n", album.Title, album.ArtistName, album.Status)
		for _, v := range album.Versions {
			price := product.Price(album, &v, discounts, time.Now())
			if price.Discounted {
				fmt.Printf("  %s  %-25s  ~~%s~~ %s %s\n", v.ID, v.VersionName, price.Original, price.Final, price.Badge)
			} else {
				fmt.Printf("  %s  %-25s  %s\n", v.ID, v.VersionName, price.Original)
			}
		}

	case "cart":
		view := cart.NewView(client)
		if len(os.Args) > 2 {
			cartCommand(ctx, view, os.Args[2:])
			return
		}
		if err := view.Fetch(ctx); err != nil {
			fail(err)
		}
		printCart(view)

	case "checkout":
		view := cart.NewView(client)
		if err := view.Fetch(ctx); err != nil {
			fail(err)
		}
		order, err := view.Checkout(ctx)
		if err != nil {
			fail(err)
		}
		fmt.Printf("order %s created, total %.2f\n", order.ID, order.TotalAmount.Float64())

	case "orders":
		list, err := client.ListOrders(ctx, 1, 20)
		if err != nil {
			fail(err)
		}
		for _, o := range list.Orders {
			fmt.Printf("%s  %-10s %8.2f  %s\n", o.ID, o.Status, o.TotalAmount.Float64(), o.CreatedAt.Format("2006-01-02"))
		}

	default:
		usage()
		os.Exit(2)
	}
}

func cartCommand(ctx context.Context, view *cart.View, args []string) {
	switch args[0] {
	case "add":
		if len(args) < 2 {
			fail(fmt.Errorf("usage: cart add <version-id> [quantity]"))
		}
		qty := 1
		if len(args) > 2 {
			qty, _ = strconv.Atoi(args[2])
		}
		if err := view.Fetch(ctx); err != nil {
			fail(err)
		}
		if err := view.Add(ctx, parseID(args[1]), qty); err != nil {
			fail(err)
		}
		printCart(view)

	case "remove":
		if len(args) < 2 {
			fail(fmt.Errorf("usage: cart remove <item-id>"))
		}
		if err := view.Fetch(ctx); err != nil {
			fail(err)
		}
		if err := view.Remove(ctx, parseID(args[1])); err != nil {
			fail(err)
		}
		printCart(view)

	default:
		fail(fmt.Errorf("unknown cart command %q", args[0]))
	}
}

func printCart(view *cart.View) {
	items := view.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, item := range items {
		line := cart.DisplayLine(item)
		if line.Discounted {
			fmt.Printf("%s  %dx %s (%s)  ~~%s~~ %s %s\n",
				item.ID, item.Quantity, item.AlbumTitle, item.VersionName, line.Base, line.Final, line.Badge)
		} else {
			fmt.Printf("%s  %dx %s (%s)  %s\n",
				item.ID, item.Quantity, item.AlbumTitle, item.VersionName, line.Base)
		}
	}
	totals := view.Totals()
	fmt.Printf("base %.2f  discount -%.2f  total %.2f\n",
		totals.BaseTotal.Float64(), totals.TotalDiscount.Float64(), totals.FinalTotal.Float64())
}

func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		fail(fmt.Errorf("invalid id %q", s))
	}
	return id
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: storefront <command> [args]

commands:
  register <email> <password> <first-name> <last-name>
  login <email> <password>
  logout
  whoami
  categories
  artist <id>
  albums [page]
  album <id>
  cart [add <version-id> [quantity] | remove <item-id>]
  checkout
  orders`)
}

func requireArgs(n int, usage string) {
	if len(os.Args) < n {
		fail(fmt.Errorf("usage: storefront %s", usage))
	}
}

func fail(err error) {
	if apiErr, ok := api.AsAPIError(err); ok {
		fmt.Fprintln(os.Stderr, apiErr.Message)
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}
