// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// erg-dump is a small example program demonstrating the erg facade: it
// opens an archive and either lists its signals or dumps one signal's
// values as CSV to stdout.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"

	"github.com/yeonsoo-p/liberg/erg"
)

var (
	list   = flag.Bool("list", false, "List the archive's signals and exit")
	signal = flag.String("signal", "", "Dump the named signal's values as CSV")
	proto  = flag.Bool("proto", false, "Print the archive's bound schema as protobuf-encoded bytes (ergpb.RowLayout) and exit")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-list | -signal NAME | -proto] path.bin\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	shutdown := grail.Init()
	defer shutdown()

	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 || (!*list && *signal == "" && !*proto) {
		usage()
		os.Exit(1)
	}

	archive, err := erg.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "erg-dump: %v\n", err)
		os.Exit(1)
	}
	defer archive.Close()

	if *list {
		runList(archive)
		return
	}
	if *proto {
		runProto(archive)
		return
	}
	runDump(archive, *signal)
}

func runProto(archive *erg.Archive) {
	buf, err := archive.MarshalSchema()
	if err != nil {
		fmt.Fprintf(os.Stderr, "erg-dump: marshaling schema: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(buf)
}

func runList(archive *erg.Archive) {
	fmt.Printf("samples: %d\n", archive.SampleCount())
	for _, sig := range archive.Signals() {
		fmt.Printf("%s\t%s\tunit=%s\tfactor=%g\toffset=%g\n", sig.Name, sig.Type, sig.Unit, sig.Factor, sig.Offset)
	}
}

func runDump(archive *erg.Archive, name string) {
	values, ok := archive.GetSignalAsDouble(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "erg-dump: no such signal %q\n", name)
		os.Exit(1)
	}
	for _, v := range values {
		fmt.Println(v)
	}
}
