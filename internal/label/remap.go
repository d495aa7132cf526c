package label

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
)

// RemapStats counts the effect of a Remap pass over one label file.
type RemapStats struct {
	Remapped int
	Dropped  int
	Kept     int
}

// Remap rewrites the class IDs of a label file in place. IDs present in
// mapping are replaced; IDs in drop are removed together with their
// geometry; everything else is kept untouched. Lines that do not start
// with an integer class ID pass through unchanged so that a remap never
// destroys data it does not understand.
func Remap(data []byte, mapping map[int]int, drop map[int]bool) ([]byte, RemapStats) {
	var (
		out   bytes.Buffer
		stats RemapStats
	)

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		class, err := strconv.Atoi(fields[0])
		if err != nil {
			stats.Kept++
			out.WriteString(line)
			out.WriteByte('\n')
			continue
		}

		if drop[class] {
			stats.Dropped++
			continue
		}

		if newID, ok := mapping[class]; ok {
			fields[0] = strconv.Itoa(newID)
			stats.Remapped++
		} else {
			stats.Kept++
		}
		out.WriteString(strings.Join(fields, " "))
		out.WriteByte('\n')
	}

	return out.Bytes(), stats
}
