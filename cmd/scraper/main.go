/*
scraper is a configuration-driven command line web scraper.

A declarative yaml file describes what to scrape (url, css selectors,
scroll/pagination/login options) and how to persist it (json, csv, excel);
scraper drives a headless chrome instance and writes the results.
*/
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/alecthomas/kong"

	"github.com/thoni-miguel/web-scraping-template/internal/config"
	"github.com/thoni-miguel/web-scraping-template/internal/log"
	"github.com/thoni-miguel/web-scraping-template/internal/output"
	"github.com/thoni-miguel/web-scraping-template/internal/scraper"
)

var version = "dev"

type VersionFlag string

func (v VersionFlag) Decode(_ *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                       { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

type cli struct {
	Version VersionFlag `short:"v" help:"Print the version and exit."`
	Debug   bool        `short:"d" help:"Set log level to 'debug'."`

	Run      RunCmd      `cmd:"" help:"Run the scrape described by the given configuration file"`
	Validate ValidateCmd `cmd:"" help:"Validate the given configuration file without launching a browser"`
	Init     InitCmd     `cmd:"" help:"Write a commented starter configuration file"`
}

type RunCmd struct {
	Config string `short:"c" default:"./config.yaml" help:"The location of the configuration file."`
	Stdout bool   `short:"o" help:"If set to true the scraped data will be written to stdout despite the configured output format."`
	Format string `short:"f" help:"Override the configured output format (json, csv, excel, stdout)."`
}

func (rc *RunCmd) Run() error {
	cfg, err := config.NewScrapeConfig(rc.Config)
	if err != nil {
		slog.Error(err.Error())
		return err
	}
	if rc.Format != "" {
		cfg.OutputFormat = rc.Format
		if err := cfg.Validate(); err != nil {
			slog.Error(err.Error())
			return err
		}
	}
	if rc.Stdout {
		cfg.OutputFormat = config.FormatStdout
	}

	writer, err := output.NewWriter(&output.WriterConfig{
		Format: cfg.OutputFormat,
		Dir:    cfg.OutputDir,
	})
	if err != nil {
		slog.Error(err.Error())
		return err
	}

	s := scraper.New(cfg)
	result, err := s.Run(context.Background())
	if err != nil {
		slog.Error(err.Error())
		return err
	}
	if err := writer.Write(result); err != nil {
		slog.Error(err.Error())
		return err
	}
	return nil
}

type ValidateCmd struct {
	Config string `short:"c" default:"./config.yaml" help:"The location of the configuration file."`
}

func (vc *ValidateCmd) Run() error {
	cfg, err := config.NewScrapeConfig(vc.Config)
	if err != nil {
		slog.Error(err.Error())
		return err
	}
	if _, err := scraper.NewExtractor(cfg); err != nil {
		slog.Error(err.Error())
		return err
	}
	fmt.Printf("%s is valid\n", vc.Config)
	return nil
}

type InitCmd struct {
	Output string `short:"o" default:"./config.yaml" help:"The file that the starter configuration will be written to."`
	Force  bool   `short:"f" help:"Overwrite the file if it already exists."`
}

func (ic *InitCmd) Run() error {
	if !ic.Force {
		if _, err := os.Stat(ic.Output); err == nil {
			err := fmt.Errorf("%s already exists, use --force to overwrite", ic.Output)
			slog.Error(err.Error())
			return err
		}
	}
	if err := os.WriteFile(ic.Output, []byte(starterConfig), 0644); err != nil {
		slog.Error(fmt.Sprintf("error writing to file: %v", err))
		return err
	}
	slog.Info(fmt.Sprintf("successfully wrote starter config to file %s", ic.Output))
	return nil
}

const starterConfig = `# Scrape configuration. Only 'url' and 'selectors' are required, everything
# else falls back to a documented default.
url: https://quotes.toscrape.com/
output_format: json # json, csv, excel or stdout
# output_dir: output
# wait_ms: 2000
# headless: true

selectors:
  quotes: div.quote span.text
  authors: div.quote small.author
  tags: div.quote div.tags a.tag

# One record per item instead of one record per page:
# item_selector: div.quote
# item_selectors:
#   text: span.text
#   author: small.author

# infinite_scroll: true
# max_scrolls: 10
# scroll_delay_ms: 2000

# multi_page: true
# pagination_selector: li.next a
# max_pages: 5

# login:
#   username: myuser # or env SCRAPER_LOGIN_USERNAME
#   password: mypassword # or env SCRAPER_LOGIN_PASSWORD
#   username_selector: "#username"
#   password_selector: "#password"
#   submit_selector: "input[type='submit']"

# rate_limit:
#   requests_per_minute: 60
#   delay_ms: 1000

# take_screenshot: true
# screenshot_file: screenshot.png
`

func getVersion() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if ok {
		if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
			return buildInfo.Main.Version
		}
	}
	return version
}

func main() {
	cli := cli{
		Version: VersionFlag(getVersion()),
	}

	ctx := kong.Parse(&cli,
		kong.Vars{
			"version": string(cli.Version),
		})

	log.Debug = cli.Debug
	log.InitializeDefaultLogger()

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
