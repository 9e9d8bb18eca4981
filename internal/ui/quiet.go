package ui

// quietPresenter discards progress.
type quietPresenter struct{}

func (quietPresenter) Update(int, int, int, string) {}

func (quietPresenter) Finish() {}
