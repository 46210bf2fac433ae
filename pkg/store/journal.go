package store

// Original is one journal slot: the value a key held immediately before its
// first mutation after SaveOriginals, or the absent marker.
type Original struct {
	// Value is the pre-mutation value. nil when the key was absent.
	Value Value

	// Existed reports whether the key was present at capture time.
	Existed bool
}

// SaveOriginals opens the originals journal. From this point every key's
// first mutation captures its prior state. At most one journal can be open;
// opening a second fails with ErrJournalAlreadyOpen.
func (s *Store) SaveOriginals() error {
	if s.journalOpen {
		return ErrJournalAlreadyOpen
	}
	s.journalOpen = true
	s.journal = make(map[string]Original)
	return nil
}

// RetrieveOriginals closes the journal and returns it as a mapping from key
// to pre-mutation state. Fails with ErrNoJournalOpen when no journal is open.
func (s *Store) RetrieveOriginals() (map[string]Original, error) {
	if !s.journalOpen {
		return nil, ErrNoJournalOpen
	}
	j := s.journal
	s.journalOpen = false
	s.journal = nil
	return j, nil
}

// recordOriginal captures the first pre-mutation value seen for a key during
// the journal's lifetime. Idempotent across repeated mutations of the key.
func (s *Store) recordOriginal(key string, v Value, existed bool) {
	if !s.journalOpen {
		return
	}
	if _, seen := s.journal[key]; seen {
		return
	}
	o := Original{Existed: existed}
	if existed {
		o.Value = v.Clone()
	}
	s.journal[key] = o
}
