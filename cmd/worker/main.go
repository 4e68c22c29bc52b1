package main

import (
	"log"
	"os"
)

const usage = `usage:
  worker render <fields.json> <out.pdf> [Light|Dark]
  worker purge-exports`

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	var err error
	switch os.Args[1] {
	case "render":
		err = RunRender(os.Args[2:])
	case "purge-exports":
		err = RunPurge(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s\n%s", os.Args[1], usage)
	}
	if err != nil {
		log.Fatal(err)
	}
}
