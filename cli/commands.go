// Package cli provides the Cobra-based CLI for storefront.
package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"storefront/cart"
	"storefront/catalog"
	"storefront/domain"
	"storefront/i18n"
	"storefront/store"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	rootCmd = &cobra.Command{
		Use:           "storefront",
		Short:         "Product catalog and shopping cart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests to inject store
			if productStore != nil {
				return nil
			}

			// a missing .env is not an error
			_ = godotenv.Load()

			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			lvlStr := strings.ToLower(viper.GetString("log-level"))
			lvl := slog.LevelInfo
			switch lvlStr {
			case "debug":
				lvl = slog.LevelDebug
			case "warn", "warning":
				lvl = slog.LevelWarn
			case "error":
				lvl = slog.LevelError
			}
			slog.SetDefault(slog.New(
				slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
			))

			var err error
			productStore, err = store.NewStore(cmd.Context(), store.Options{
				Kind:   viper.GetString("store"),
				Path:   viper.GetString("store-file"),
				Driver: viper.GetString("db-driver"),
				DSN:    viper.GetString("dsn"),
			})
			return err
		},
	}

	productStore domain.ProductStore
	service      *catalog.Service
	cartSession  string

	stdinFile   *os.File
	stdinReader *bufio.Reader
)

// stdin returns one buffered reader over os.Stdin, shared by the shell loop
// and delete confirmation so neither loses input buffered by the other.
func stdin() *bufio.Reader {
	if stdinReader == nil || stdinFile != os.Stdin {
		stdinFile = os.Stdin
		stdinReader = bufio.NewReader(os.Stdin)
	}
	return stdinReader
}

func catalogService() *catalog.Service {
	if service == nil {
		service = catalog.New(productStore, cart.NewRegistry())
	}
	return service
}

// currentCart returns the shell's cart session, opening one on first use.
func currentCart() string {
	if cartSession == "" {
		cartSession = catalogService().Carts().Open()
	}
	return cartSession
}

func resolver() *i18n.Resolver {
	return i18n.New(viper.GetString("lang"))
}

// reportErrors prints validation failures in the configured language.
func reportErrors(err error) {
	var vfe *domain.ValidationFailedError
	if errors.As(err, &vfe) {
		for _, msg := range domain.RenderErrors(resolver(), vfe.Keys) {
			fmt.Fprintln(os.Stderr, msg)
		}
		return
	}
	var ife *domain.ImportFailedError
	if errors.As(err, &ife) {
		r := resolver()
		for _, row := range ife.Rows {
			for _, msg := range domain.RenderErrors(r, row.Keys) {
				fmt.Fprintf(os.Stderr, "row %d: %s\n", row.Row+1, msg)
			}
		}
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}

func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// resetFlags restores every flag to its default so shell commands do not
// inherit values from the previous line.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func init() {
	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode with a cart session",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := stdin()
			for {
				fmt.Print("storefront> ")
				line, err := r.ReadString('\n')
				if err != nil {
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}
				rootCmd.SetArgs(strings.Fields(line))
				if err := rootCmd.Execute(); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				rootCmd.SetArgs(nil)
				resetFlags(rootCmd)
			}
		},
	}
	rootCmd.AddCommand(shellCmd)

	rootCmd.PersistentFlags().String("store", "memory", "store backend: memory|file|postgres")
	rootCmd.PersistentFlags().String("store-file", "data/products.json", "file store path")
	rootCmd.PersistentFlags().String("dsn", "", "postgres connection string")
	rootCmd.PersistentFlags().String("db-driver", "postgres", "database/sql driver: postgres|pgx")
	rootCmd.PersistentFlags().String("lang", "en", "language for validation messages")
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	for _, name := range []string{"store", "store-file", "dsn", "db-driver", "lang", "config", "log-level"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
	viper.SetEnvPrefix("STOREFRONT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// create
	var in domain.ProductInput
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Validate and create a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := catalogService().Save(cmd.Context(), in)
			if err != nil {
				reportErrors(err)
				return err
			}
			printJSON(p)
			return nil
		},
	}
	createCmd.Flags().StringVar(&in.Name, "name", "", "name")
	createCmd.Flags().StringVar(&in.Price, "price", "", "price, e.g. 20.99")
	createCmd.Flags().StringVar(&in.Stock, "stock", "", "units in stock")
	createCmd.Flags().StringVar(&in.Description, "description", "", "description")
	createCmd.Flags().StringVar(&in.Details, "details", "", "details")
	rootCmd.AddCommand(createCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get product by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := catalogService().Get(cmd.Context(), id)
			if err != nil {
				if domain.IsProductNotFoundError(err) {
					fmt.Fprintln(os.Stderr, err)
					return nil
				}
				return err
			}
			printJSON(p)
			return nil
		},
	}
	rootCmd.AddCommand(getCmd)

	// list
	var lMin, lMax, lSort, lOrder, lOutput string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := domain.ListFilter{SortBy: lSort, Order: lOrder}
			if cmd.Flags().Changed("min-price") {
				d, err := decimal.NewFromString(lMin)
				if err != nil {
					return fmt.Errorf("invalid --min-price: %w", err)
				}
				filter.MinPrice = &d
			}
			if cmd.Flags().Changed("max-price") {
				d, err := decimal.NewFromString(lMax)
				if err != nil {
					return fmt.Errorf("invalid --max-price: %w", err)
				}
				filter.MaxPrice = &d
			}
			out, err := catalogService().List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if lOutput == "json" {
				printJSON(out)
				return nil
			}
			for _, p := range out {
				fmt.Printf("%d | %s | %s | %d\n", p.ID, p.Name, p.Price.StringFixed(2), p.Quantity)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&lMin, "min-price", "", "min price")
	listCmd.Flags().StringVar(&lMax, "max-price", "", "max price")
	listCmd.Flags().StringVar(&lSort, "sort-by", "", "sort field: name|price|quantity")
	listCmd.Flags().StringVar(&lOrder, "order", "asc", "sort order")
	listCmd.Flags().StringVar(&lOutput, "output", "", "output format")
	rootCmd.AddCommand(listCmd)

	// delete
	var force bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product and remove it from open carts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !force {
				fmt.Printf("Delete %d? (y/N): ", id)
				resp, _ := stdin().ReadString('\n')
				resp = strings.TrimSpace(resp)
				if resp != "y" && resp != "Y" {
					fmt.Println("aborted")
					return nil
				}
			}
			start := time.Now()
			if err := catalogService().Delete(cmd.Context(), id); err != nil {
				return err
			}
			slog.Debug("delete finished", "product_id", id, "duration_ms", time.Since(start).Milliseconds())
			fmt.Println("deleted")
			return nil
		},
	}
	deleteCmd.Flags().BoolVar(&force, "force", false, "skip confirmation")
	rootCmd.AddCommand(deleteCmd)

	// import: JSON array, NDJSON or a single object of product inputs
	var importFile string
	importCmd := &cobra.Command{
		Use:   "import --file <file>",
		Short: "Validate and import products from JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if importFile == "" {
				return errors.New("--file required")
			}

			b, err := os.ReadFile(importFile)
			if err != nil {
				return err
			}

			btrim := bytes.TrimSpace(b)
			if len(btrim) == 0 {
				return errors.New("empty file")
			}

			var inputs []domain.ProductInput

			if btrim[0] == '[' {
				if err := json.Unmarshal(btrim, &inputs); err != nil {
					return err
				}
			} else {
				scanner := bufio.NewScanner(bytes.NewReader(btrim))
				for scanner.Scan() {
					line := bytes.TrimSpace(scanner.Bytes())
					if len(line) == 0 {
						continue
					}
					var in domain.ProductInput
					if err := json.Unmarshal(line, &in); err != nil {
						return err
					}
					inputs = append(inputs, in)
				}
				if err := scanner.Err(); err != nil {
					return err
				}
			}

			out, err := catalogService().Import(cmd.Context(), inputs)
			if err != nil {
				reportErrors(err)
				return err
			}
			fmt.Printf("imported %d product(s)\n", len(out))
			return nil
		},
	}
	importCmd.Flags().StringVar(&importFile, "file", "", "input file")
	rootCmd.AddCommand(importCmd)

	// export
	var exportFile string
	exportCmd := &cobra.Command{
		Use:   "export --file <file>",
		Short: "Export products to JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if exportFile == "" {
				return errors.New("--file required")
			}
			out, err := catalogService().ListAll(cmd.Context())
			if err != nil {
				return err
			}
			b, _ := json.MarshalIndent(out, "", "  ")
			return os.WriteFile(exportFile, b, 0o644)
		},
	}
	exportCmd.Flags().StringVar(&exportFile, "file", "", "output file")
	rootCmd.AddCommand(exportCmd)

	rootCmd.AddCommand(newCartCmd())
}

func Execute() error {
	return rootCmd.Execute()
}
