package schema

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDGen выдаёт локальные идентификаторы (ULID, монотонно в пределах процесса)
type IDGen struct {
	mu      sync.Mutex
	entropy io.Reader
}

func NewIDGen() *IDGen {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &IDGen{entropy: ulid.Monotonic(src, 0)}
}

func (g *IDGen) New() string {
	// monotonic entropy не потокобезопасен
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}
