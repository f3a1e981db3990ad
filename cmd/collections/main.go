// collections is the operator tool for the collection program: it
// derives the program's addresses, decodes program-owned account blobs,
// and dumps or restores a local account store.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/MercuryProtocol-labs/collection/pkg/accounts"
	"github.com/MercuryProtocol-labs/collection/pkg/programs/collection"
	"github.com/MercuryProtocol-labs/collection/pkg/snapshot"
	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "dev"
)

var (
	mintAddr     = flag.String("mint", "", "Derive the index address for this mint (base58)")
	showTreasury = flag.Bool("treasury", false, "Print the derived treasury address")
	decodeFile   = flag.String("decode", "", "Decode a program account blob from this file")
	decodeKind   = flag.String("kind", "collection", "Record kind for -decode: collection or index")
	dataDir      = flag.String("data-dir", "", "BadgerDB account store directory")
	saveSnapshot = flag.String("save-snapshot", "", "Dump the account store to this snapshot file")
	loadSnapshot = flag.String("load-snapshot", "", "Restore the account store from this snapshot file")
	showVersion  = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if *showVersion {
		fmt.Printf("collections %s (%s)\n", Version, GitCommit)
		return
	}

	ran := false

	if *mintAddr != "" {
		ran = true
		if err := printIndexAddress(*mintAddr); err != nil {
			log.Fatalf("derive index address: %v", err)
		}
	}

	if *showTreasury {
		ran = true
		if err := printTreasuryAddress(); err != nil {
			log.Fatalf("derive treasury address: %v", err)
		}
	}

	if *decodeFile != "" {
		ran = true
		if err := decodeAccountFile(*decodeFile, *decodeKind); err != nil {
			log.Fatalf("decode %s: %v", *decodeFile, err)
		}
	}

	if *saveSnapshot != "" || *loadSnapshot != "" {
		ran = true
		if err := runSnapshot(); err != nil {
			log.Fatalf("snapshot: %v", err)
		}
	}

	if !ran {
		flag.Usage()
		os.Exit(2)
	}
}

func printIndexAddress(mint string) error {
	pk, err := types.PubkeyFromBase58(mint)
	if err != nil {
		return err
	}

	addr, bump, err := collection.DeriveIndexAddress(pk)
	if err != nil {
		return err
	}
	fmt.Printf("index address: %s (bump %d)\n", addr.String(), bump)
	return nil
}

func printTreasuryAddress() error {
	addr, bump, err := collection.DeriveTreasuryAddress()
	if err != nil {
		return err
	}
	fmt.Printf("treasury address: %s (bump %d)\n", addr.String(), bump)
	return nil
}

func decodeAccountFile(path, kind string) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var record any
	switch kind {
	case "collection":
		record, err = collection.DeserializeCollectionAccount(blob)
	case "index":
		record, err = collection.DeserializeCollectionIndex(blob)
	default:
		return fmt.Errorf("unknown record kind %q", kind)
	}
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runSnapshot() error {
	if *dataDir == "" {
		return fmt.Errorf("-data-dir is required for snapshot operations")
	}

	store, err := accounts.NewBadgerStore(*dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	if *loadSnapshot != "" {
		if err := snapshot.Load(store, *loadSnapshot); err != nil {
			return err
		}
		log.Printf("restored %d accounts from %s", store.Count(), *loadSnapshot)
	}

	if *saveSnapshot != "" {
		if err := snapshot.Save(store, *saveSnapshot); err != nil {
			return err
		}
		log.Printf("saved %d accounts to %s", store.Count(), *saveSnapshot)
	}

	return nil
}
