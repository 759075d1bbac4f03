package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"nibasm/pkg/asm"
	"nibasm/pkg/memimage"
)

type buildOptions struct {
	strict      bool
	destructive bool
	listing     bool
	tokens      bool
}

func newRootCmd() *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "nibasm <assembly-path> <output-path>",
		Short: "Assembler for the 8-bit nibble machine",
		Long: `Nibasm assembles a source file into a 256-byte memory image.

Each line holds one instruction (OPCODE REGISTER [OPERAND]) or one DATA
directive, optionally followed by up to two : "label" clauses. Every
instruction is two bytes wide and data is padded to an even length. The
image is zero-filled to 256 bytes before it is written.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return cmd.Usage()
			}
			return build(cmd.OutOrStdout(), args[0], args[1], opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.strict, "strict", false, "reject labels declared more than once")
	flags.BoolVar(&opts.destructive, "destructive", false, `enable !"label" operands that consume the label they use`)
	flags.BoolVar(&opts.listing, "listing", false, "print a listing of the assembled code")
	flags.BoolVar(&opts.tokens, "tokens", false, "print the parsed token program")
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	cmd.AddCommand(newDumpCmd())
	return cmd
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <image-path>",
		Short: "Print a listing of an assembled memory image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := memimage.Read(args[0])
			if err != nil {
				return err
			}
			glog.V(1).Infof("loaded %d bytes from %s", len(image), args[0])
			return memimage.WriteListing(cmd.OutOrStdout(), image, nil)
		},
	}
}

func build(out io.Writer, srcPath, outPath string, opts buildOptions) error {
	source, err := memimage.ReadSource(srcPath)
	if err != nil {
		return err
	}

	var asmOpts []asm.Option
	if opts.strict {
		asmOpts = append(asmOpts, asm.WithStrictLabels())
	}
	if opts.destructive {
		asmOpts = append(asmOpts, asm.WithDestructiveRefs())
	}

	a := asm.NewAssembler(asmOpts...)
	code, sourceMap, err := a.Assemble(source)
	if opts.tokens && a.Tokens() != nil {
		printTokens(out, a.Tokens())
	}
	if err != nil {
		return errors.Wrapf(err, "assemble %s", srcPath)
	}
	glog.V(1).Infof("assembled %d tokens from %d lines, %d labels", len(code), len(sourceMap), len(a.Labels()))
	for name, addr := range a.Labels() {
		glog.V(2).Infof("label %q -> 0x%02X", name, addr)
	}

	image, err := memimage.Pad(code)
	if err != nil {
		return err
	}
	if err := memimage.Write(outPath, image); err != nil {
		return err
	}

	if opts.listing {
		if err := memimage.WriteListing(out, code, a.Labels()); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "assembled %d bytes -> %s\n", len(code), outPath)
	return nil
}

func printTokens(out io.Writer, program asm.Program) {
	printer := pp.New()
	printer.SetColoringEnabled(out == io.Writer(os.Stdout))
	printer.Fprintln(out, program)
}

func main() {
	// glog expects the standard flag set to be parsed; cobra parses the
	// real values into it.
	_ = flag.CommandLine.Parse(nil)

	err := newRootCmd().Execute()
	glog.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "nibasm: %v\n", err)
		os.Exit(1)
	}
}
