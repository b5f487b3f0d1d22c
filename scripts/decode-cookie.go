//go:build ignore

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"motoclub-theme/internal/cookiestore"
)

// Decodes mcColorConfig cookie values pasted from the browser's dev tools.
// Usage: go run scripts/decode-cookie.go
func main() {
	fmt.Println("Color preference cookie decoder")
	fmt.Println("===============================")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("Paste a cookie value (or 'quit' to exit): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, cookiestore.CookieName+"=")
		if line == "" {
			continue
		}
		if strings.ToLower(line) == "quit" {
			break
		}

		raw, err := cookiestore.DecodeComponent(line)
		if err != nil {
			fmt.Println("Error decoding value:", err)
			continue
		}

		var out bytes.Buffer
		if err := json.Indent(&out, []byte(raw), "", "  "); err != nil {
			fmt.Println("Not valid JSON:", err)
			fmt.Println(raw)
			continue
		}

		fmt.Println()
		fmt.Println(out.String())
		fmt.Printf("(%d bytes encoded, browsers drop cookies over 4096)\n", len(line))
		fmt.Println()
	}
}
