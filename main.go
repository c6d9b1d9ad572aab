package main

import (
	"fmt"
	"os"

	lazydash "github.com/gdamms/lazydash/src"
	"github.com/gdamms/lazydash/src/protector"
	"github.com/gdamms/lazydash/src/util"
)

var version = "0.1"
var revision = "devel"

func exit(code int, err error) {
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
	}
	util.Exit(code)
}

func main() {
	protector.Protect()
	options, err := lazydash.ParseOptions(true, os.Args[1:])
	if err != nil {
		exit(lazydash.ExitError, err)
		return
	}
	if options.Help {
		fmt.Print(lazydash.Usage())
		exit(lazydash.ExitOk, nil)
		return
	}
	if options.Version {
		if len(revision) > 0 {
			fmt.Printf("%s (%s)\n", version, revision)
		} else {
			fmt.Println(version)
		}
		exit(lazydash.ExitOk, nil)
		return
	}
	code, err := lazydash.Run(options, version)
	exit(code, err)
}
