package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"naver-go/internal/config"
	"naver-go/internal/service"
	"naver-go/pkg/export"
	"naver-go/pkg/logger"
)

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDurationOrDefault returns environment variable as duration or default
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// options are the flags shared by every command.
type options struct {
	configPath string
	format     export.Format
	out        string
	timeout    time.Duration
}

func main() {
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", getEnvOrDefault("NAVER_CONFIG", ""), "Configuration file (env: NAVER_CONFIG)")
		format     = flag.String("format", getEnvOrDefault("NAVER_FORMAT", string(export.FormatTable)), "Output format: table, csv, xlsx, json (env: NAVER_FORMAT)")
		out        = flag.String("out", "", "Write output to a file; the extension picks the format")
		timeout    = flag.Duration("timeout", getEnvDurationOrDefault("NAVER_TIMEOUT", 30*time.Second), "Overall command timeout (env: NAVER_TIMEOUT)")
		debug      = flag.Bool("debug", getEnvBoolOrDefault("DEBUG", false), "Enable debug logging (env: DEBUG)")
		help       = flag.Bool("help", false, "Show help message")
	)
	flag.Usage = printUsage
	flag.Parse()

	if *help || flag.NArg() == 0 {
		printUsage()
		return
	}

	f, err := export.ParseFormat(*format)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}
	opts := options{configPath: *configPath, format: f, out: *out, timeout: *timeout}

	if *debug {
		logger.SetLogger(logger.New(logger.Config{Level: "debug", Format: "console", Output: "stderr"}))
	}

	if err := run(opts, flag.Arg(0), flag.Args()[1:]); err != nil {
		var usage *usageError
		if errors.As(err, &usage) {
			fmt.Fprintln(os.Stderr, "ERROR:", usage.msg)
			os.Exit(2)
		}
		logger.Component("cli").WithError(err).Error("Command failed")
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

func run(opts options, name string, args []string) error {
	cmd, ok := commands[name]
	if !ok {
		return &usageError{msg: fmt.Sprintf("unknown command %q", name)}
	}

	cfg, err := config.NewManager().Load(opts.configPath)
	if err != nil {
		return err
	}
	clients, err := service.NewClients(cfg, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	result, err := cmd(ctx, clients, args)
	if err != nil {
		return err
	}
	return writeResult(opts, result)
}

func printUsage() {
	fmt.Println("naver-go: Naver Open API and NAVER Cloud API client")
	fmt.Println("")
	fmt.Println("USAGE:")
	fmt.Println("    naver-go [OPTIONS] <command> [command flags] [args]")
	fmt.Println("")
	fmt.Println("COMMANDS:")
	fmt.Println("    search    -kind news [-display N] [-start N] [-sort sim|date] <query>")
	fmt.Println("    trend     -start YYYY-MM-DD -end YYYY-MM-DD [-unit date|week|month] -group name:kw1,kw2 ...")
	fmt.Println("    shopping  -start ... -end ... -category name:code | code [-keyword name:kw | kw] [-by device|gender|age]")
	fmt.Println("    geocode   [-coordinate lng,lat] <address>")
	fmt.Println("    translate [-source ko] -target en <text>")
	fmt.Println("    shorturl  <url>")
	fmt.Println("")
	fmt.Println("OPTIONS:")
	fmt.Println("    -config string     Configuration file (env: NAVER_CONFIG)")
	fmt.Println("    -format string     table, csv, xlsx or json (default: table, env: NAVER_FORMAT)")
	fmt.Println("    -out string        Output file; .csv, .xlsx and .json pick the format")
	fmt.Println("    -timeout duration  Overall command timeout (default: 30s, env: NAVER_TIMEOUT)")
	fmt.Println("    -debug             Enable debug logging (env: DEBUG)")
	fmt.Println("    -help              Show this help message")
	fmt.Println("")
	fmt.Println("CREDENTIALS (environment or .env):")
	fmt.Println("    NAVER_CONSUMER_CLIENT_ID, NAVER_CONSUMER_CLIENT_SECRET   Open API search, DataLab, short URL")
	fmt.Println("    NAVER_CLOUD_KEY_ID, NAVER_CLOUD_KEY                      Maps and Papago translation")
	fmt.Println("")
	fmt.Println("EXAMPLES:")
	fmt.Println("    naver-go search -kind blog 커피 원두")
	fmt.Println("    naver-go -out trend.xlsx trend -start 2023-01-01 -end 2023-06-30 -unit month -group coffee:커피 -group tea:차,녹차")
	fmt.Println("    naver-go -format json shopping -start 2023-01-01 -end 2023-01-31 -category 50000000 -by device")
}
