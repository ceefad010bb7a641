package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/broady/apikit/apikitgen"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     GenCmd     `cmd:"" help:"Generate typed client code from a manifest."`
	Check   CheckCmd   `cmd:"" help:"Validate a manifest without generating files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

type GenCmd struct {
	Manifest string `arg:"" help:"Path to the JSON endpoint manifest."`
	Out      string `arg:"" help:"Output directory for generated files."`
}

func (c *GenCmd) Run() error {
	res, err := apikitgen.FromFile(c.Manifest).ToDir(c.Out)
	if err != nil {
		return err
	}
	for path := range res.Files {
		fmt.Println(path)
	}
	return nil
}

type CheckCmd struct {
	Manifest string `arg:"" help:"Path to the JSON endpoint manifest."`
}

func (c *CheckCmd) Run() error {
	if _, err := apikitgen.LoadManifest(c.Manifest); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("apikit"),
		kong.Description("apikit CLI for typed API client generation."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
