package main

import "github.com/ana-coahuila/META-FIT-PROJECT/cmd/metafit"

func main() {
	metafit.Execute()
}
