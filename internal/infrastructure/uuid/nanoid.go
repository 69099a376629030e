package uuid

import gonanoid "github.com/matoous/go-nanoid"

// Generator entity id generator
type Generator interface {
	Generate() (string, error)
}

// URLSafeAlphabet ids are used in routes, keep them free of '-' and '_'
const URLSafeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// NanoIDGenerator Generator implementation using NanoID
type NanoIDGenerator struct {
	Length   int
	Alphabet string
}

var _ Generator = &NanoIDGenerator{}

// NewNanoIDGenerator create a new `NanoIDGenerator` instance
func NewNanoIDGenerator(length int) *NanoIDGenerator {
	if length < 1 {
		panic("length must be larger than 1")
	}
	return &NanoIDGenerator{Length: length, Alphabet: URLSafeAlphabet}
}

// Generate generate id
func (ng *NanoIDGenerator) Generate() (string, error) {
	return gonanoid.Generate(ng.Alphabet, ng.Length)
}
