package draw

import "strings"

// glyphs is a 5-row block font. '#' is ink; rows of one glyph share a width.
var glyphs = map[rune][5]string{
	'A':  {".#.", "#.#", "###", "#.#", "#.#"},
	'C':  {"###", "#..", "#..", "#..", "###"},
	'D':  {"##.", "#.#", "#.#", "#.#", "##."},
	'E':  {"###", "#..", "##.", "#..", "###"},
	'G':  {"###", "#..", "#.#", "#.#", "###"},
	'H':  {"#.#", "#.#", "###", "#.#", "#.#"},
	'I':  {"###", ".#.", ".#.", ".#.", "###"},
	'K':  {"#.#", "#.#", "##.", "#.#", "#.#"},
	'L':  {"#..", "#..", "#..", "#..", "###"},
	'M':  {"#...#", "##.##", "#.#.#", "#...#", "#...#"},
	'N':  {"#..#", "##.#", "#.##", "#..#", "#..#"},
	'O':  {"###", "#.#", "#.#", "#.#", "###"},
	'P':  {"##.", "#.#", "##.", "#..", "#.."},
	'R':  {"##.", "#.#", "##.", "#.#", "#.#"},
	'S':  {"###", "#..", "###", "..#", "###"},
	'T':  {"###", ".#.", ".#.", ".#.", ".#."},
	'U':  {"#.#", "#.#", "#.#", "#.#", "###"},
	'V':  {"#.#", "#.#", "#.#", "#.#", ".#."},
	'W':  {"#...#", "#...#", "#.#.#", "##.##", "#...#"},
	'Y':  {"#.#", "#.#", ".#.", ".#.", ".#."},
	'0':  {"###", "#.#", "#.#", "#.#", "###"},
	'1':  {".#.", "##.", ".#.", ".#.", "###"},
	'2':  {"###", "..#", "###", "#..", "###"},
	'3':  {"###", "..#", ".##", "..#", "###"},
	'4':  {"#.#", "#.#", "###", "..#", "..#"},
	'5':  {"###", "#..", "###", "..#", "###"},
	'6':  {"###", "#..", "###", "#.#", "###"},
	'7':  {"###", "..#", "..#", ".#.", ".#."},
	'8':  {"###", "#.#", "###", "#.#", "###"},
	'9':  {"###", "#.#", "###", "..#", "###"},
	'\'': {"#", "#", ".", ".", "."},
	'!':  {"#", "#", "#", ".", "#"},
	' ':  {"..", "..", "..", "..", ".."},
}

// Banner renders text in the block font as five lines of full blocks. Each
// font cell is two columns wide to make up for the terminal's tall cells.
// Letters are case-insensitive; runes without a glyph are skipped.
func Banner(text string) []string {
	var rows [5]strings.Builder
	first := true
	for _, r := range strings.ToUpper(text) {
		g, ok := glyphs[r]
		if !ok {
			continue
		}
		for i := range rows {
			if !first {
				rows[i].WriteByte(' ')
			}
			for _, px := range g[i] {
				if px == '#' {
					rows[i].WriteString("██")
				} else {
					rows[i].WriteString("  ")
				}
			}
		}
		first = false
	}
	out := make([]string, len(rows))
	for i := range rows {
		out[i] = rows[i].String()
	}
	return out
}
