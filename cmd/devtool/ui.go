package main

import "fmt"

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

func printColored(color, prefix, format string, a ...any) {
	fmt.Printf("%s%s %s%s\n", color, prefix, fmt.Sprintf(format, a...), colorReset)
}

func PrintInfo(format string, a ...any)    { printColored(colorBlue, "i", format, a...) }
func PrintSuccess(format string, a ...any) { printColored(colorGreen, "✓", format, a...) }
func PrintWarning(format string, a ...any) { printColored(colorYellow, "!", format, a...) }
func PrintError(format string, a ...any)   { printColored(colorRed, "✗", format, a...) }

func PrintHeader(title string) {
	fmt.Printf("\n%s=== %s ===%s\n", colorYellow, title, colorReset)
}
