package cmd

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/leandrodaf/piano/internal/genmodel"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var (
	modelAddr string
	modelKeys int
)

func init() {
	modelCmd.Flags().StringVar(&modelAddr, "addr", ":8080", "listen address")
	modelCmd.Flags().IntVar(&modelKeys, "keys", 52, "number of keys on the keyboards being served")
	rootCmd.AddCommand(modelCmd)
}

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Serves the built-in Markov model over HTTP",
	Long: `Serves the built-in Markov model over HTTP so keyboards can run with
--model-url pointed at this process.`,
	Run: func(cmd *cobra.Command, args []string) {
		serveModel()
	},
}

func handleGenerate(gen *genmodel.MarkovGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req genmodel.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "could not decode request body: "+err.Error(), http.StatusBadRequest)
			return
		}

		notes, err := gen.GenerateNotes(r.Context(), genmodel.FromWire(req.History), req.Start, req.End, req.Buffer)
		if err != nil {
			http.Error(w, "generation failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(genmodel.ToWire(notes))
	}
}

func serveModel() {
	gen := genmodel.NewMarkovGenerator(modelKeys, time.Now().UnixNano())

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/generate", handleGenerate(gen)).Methods("POST")

	log.Printf("model service listening on %s", modelAddr)
	log.Fatal(http.ListenAndServe(modelAddr, cors.Default().Handler(router)))
}
