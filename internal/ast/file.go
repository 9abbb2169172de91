package ast

import (
	"rill/internal/source"
)

type File struct {
	Span  source.Span
	Items []ItemID
	// Names maps a top-level name to its first declaration.
	Names map[source.StringID]ItemID
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{
		Span:  sp,
		Items: make([]ItemID, 0),
		Names: make(map[source.StringID]ItemID),
	}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
