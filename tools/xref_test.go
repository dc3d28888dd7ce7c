package tools

import "testing"

func TestCrossReferenceTracksDefinitionAndUses(t *testing.T) {
	source := "LOOP:\nPUSH 1\nPOP R0\nDECJZ R0, LOOP\nHALT"
	symbols, err := CrossReference(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(symbols) != 1 {
		t.Fatalf("expected exactly one symbol, got %d", len(symbols))
	}
	sym := symbols[0]
	if sym.Name != "LOOP" {
		t.Fatalf("expected LOOP, got %s", sym.Name)
	}
	if sym.DefinitionLine != 1 {
		t.Fatalf("expected definition on line 1, got %d", sym.DefinitionLine)
	}
	if len(sym.References) != 1 || sym.References[0] != 4 {
		t.Fatalf("expected one reference on line 4, got %v", sym.References)
	}
}

func TestCrossReferencePropagatesAssembleErrors(t *testing.T) {
	_, err := CrossReference("DUP:\nHALT\nDUP:\nHALT")
	if err == nil {
		t.Fatalf("expected duplicate-label error")
	}
}
