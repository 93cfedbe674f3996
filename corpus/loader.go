package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/adviserhq/adviser/core"
)

// Scanner buffer bounds. Individual records carry full embedding arrays, so
// lines run long; 4 MiB covers 3072-dim float64 embeddings with plenty of room.
const (
	initialBufSize = 64 * 1024
	maxLineSize    = 4 * 1024 * 1024
)

// Load reads a line-delimited JSON chunk file. Each line is parsed
// independently; lines that fail to parse or carry no embedding are dropped
// without aborting the load. A limit > 0 caps the number of records kept,
// in file order. Returns core.ErrStoreUnavailable if the file cannot be opened.
func Load(path string, limit int) ([]Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &core.SearchError{Op: "open " + path, Err: core.ErrStoreUnavailable}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, initialBufSize), maxLineSize)

	var chunks []Chunk
	var dropped, lineNo int

	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var c Chunk
		if err := json.Unmarshal(line, &c); err != nil {
			dropped++
			continue
		}
		if len(c.Embedding) == 0 {
			dropped++
			continue
		}
		if c.ID == "" {
			c.ID = fmt.Sprintf("chunk-%d", lineNo)
		}

		chunks = append(chunks, c)
		if limit > 0 && len(chunks) >= limit {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &core.SearchError{Op: "read " + path, Err: err}
	}

	if dropped > 0 {
		log.Printf("[corpus] %s: loaded %d chunks, dropped %d malformed lines", path, len(chunks), dropped)
	}

	return chunks, nil
}
