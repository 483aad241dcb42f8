// Command sfquery runs one of the storefront's read queries and prints the
// result as JSON. Useful to check a shop's menus and catalog data.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"homura.shop/app/internal/config"
	"homura.shop/app/internal/storefront"
)

var operations = map[string]string{
	"featured":    storefront.FeaturedCollectionQuery,
	"recommended": storefront.RecommendedProductsQuery,
	"header":      storefront.HeaderQuery,
	"footer":      storefront.FooterQuery,
	"collections": storefront.CollectionsQuery,
	"collection":  storefront.CollectionQuery,
	"product":     storefront.ProductQuery,
}

func main() {
	_ = godotenv.Load()

	op := flag.String("op", "featured", "Operation: featured, recommended, header, footer, collections, collection, product")
	handle := flag.String("handle", "", "Handle for collection/product, menu handle for header/footer")
	locale := flag.String("locale", "", "Locale as language-country, e.g. fr-ca")
	domain := flag.String("domain", os.Getenv("PUBLIC_STORE_DOMAIN"), "Store domain")
	token := flag.String("token", os.Getenv("PUBLIC_STOREFRONT_API_TOKEN"), "Storefront API token")
	version := flag.String("version", envOr("STOREFRONT_API_VERSION", "2024-10"), "Storefront API version")
	flag.Parse()

	query, ok := operations[*op]
	if !ok {
		fail("unknown operation %q", *op)
	}
	if *domain == "" || *token == "" {
		fail("store domain and token are required (flags or PUBLIC_STORE_DOMAIN / PUBLIC_STOREFRONT_API_TOKEN)")
	}

	cfg := config.Config{PublicStoreDomain: *domain, StorefrontVersion: *version}
	client, err := storefront.New(storefront.Options{
		Endpoint: cfg.Endpoint(),
		Token:    *token,
		Default:  storefront.I18n{Language: "EN", Country: "US"},
	})
	if err != nil {
		fail("%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if *locale != "" {
		in, _, ok := storefront.ParseLocalePath("/" + *locale)
		if !ok {
			fail("invalid locale %q", *locale)
		}
		ctx = storefront.WithI18n(ctx, in)
	}

	var out json.RawMessage
	if err := client.Query(ctx, query, varsFor(*op, *handle), &out, storefront.NoCache()); err != nil {
		fail("%v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

func varsFor(op, handle string) storefront.Vars {
	switch op {
	case "collections":
		return storefront.Vars{"first": 24}
	case "collection":
		return storefront.Vars{"handle": handle, "first": 24}
	case "product":
		return storefront.Vars{"handle": handle}
	case "header":
		return storefront.Vars{"headerMenuHandle": orDefault(handle, "main-menu")}
	case "footer":
		return storefront.Vars{"footerMenuHandle": orDefault(handle, "footer")}
	default:
		return nil
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
