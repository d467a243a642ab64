package util

import (
    "path/filepath"
    "strconv"
    "strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
    if s == "" {
        return def
    }
    v, err := strconv.Atoi(s)
    if err != nil {
        return def
    }
    return v
}

// SymbolFromFilename extracts the stock symbol from an input filename.
// Files arrive as SYMBOL_<suffix>.json (e.g. AAPL_daily.json).
func SymbolFromFilename(path string) string {
    name := filepath.Base(path)
    name = strings.TrimSuffix(name, filepath.Ext(name))
    if i := strings.Index(name, "_"); i > 0 {
        return name[:i]
    }
    return name
}
