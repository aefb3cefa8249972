package main

import (
	"github.com/sakurafall/tokei/ui"
	"github.com/sakurafall/tokei/util/log"

	// Image providers register themselves on import.
	_ "github.com/sakurafall/tokei/pkg/background/providers/nekosbest"
	_ "github.com/sakurafall/tokei/pkg/background/providers/nekosia"
	_ "github.com/sakurafall/tokei/pkg/background/providers/nekosmoe"
	_ "github.com/sakurafall/tokei/pkg/background/providers/waifuim"
	_ "github.com/sakurafall/tokei/pkg/background/providers/waifupics"
)

func main() {
	a := ui.GetInstance()
	if a == nil {
		log.Fatalln("This platform is not supported")
	}
	a.Run()
}
