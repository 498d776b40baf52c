package main

import (
	"context"

	"github.com/spacesedan/reviewlens/cmd/reviewlens/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
