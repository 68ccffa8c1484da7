package main

import (
	"fmt"
	"time"

	"github.com/leandrodaf/piano/internal/logger"
	"github.com/leandrodaf/piano/sdk/contracts"
	"github.com/leandrodaf/piano/sdk/piano"
)

func main() {
	log := logger.NewZapLogger()

	kb, err := piano.NewVirtualPiano(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithOctaves(3),
		contracts.WithGeometry(contracts.GeometryConfig{UnitWidth: 24, WhiteKeyHeight: 120}),
	)
	if err != nil {
		log.Error("Failed to build virtual piano", log.Field().Error("error", err))
		return
	}
	defer kb.Close()

	for _, key := range kb.Keys() {
		fmt.Printf("%3d %-4s %-5s x=%6.2f\n", key.Index, key.Name, key.Color, kb.KeyX(key))
	}

	// Map a pointer coordinate back to a key, the way an input surface would.
	hit := kb.KeyAt(30, 40)
	fmt.Println("Pointer at (30, 40) hits:", hit.Name)

	// A direct trigger seeds the history and arms the scheduling loop.
	session := contracts.NewInputSession()
	session.PointerDown = true
	if err := kb.Trigger(hit.Index, 0, session.PointerDown); err != nil {
		log.Error("Failed to trigger key", log.Field().Error("error", err))
		return
	}
	session.PointerDown = false

	fmt.Println("Scheduling model-generated notes for 10 seconds...")
	time.Sleep(10 * time.Second)
	kb.Stop()

	for _, note := range kb.History(0) {
		fmt.Printf("note key=%d at=%d\n", note.KeyIndex, note.Position)
	}
}
