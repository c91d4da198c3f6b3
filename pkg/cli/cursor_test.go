package cli

import "errors"

// fakeResult is one result set served by the fake cursor.
type fakeResult struct {
	cols []string
	rows [][]string
}

// fakeCursor implements fb.Cursor for tests. Results and failures are keyed
// by exact statement text.
type fakeCursor struct {
	executed []string
	failOn   map[string]error
	results  map[string][]fakeResult
	gate     chan struct{} // when set, Execute blocks until the gate closes
	current  []fakeResult
}

func (c *fakeCursor) Execute(query string) error {
	if c.gate != nil {
		<-c.gate
	}
	c.executed = append(c.executed, query)
	c.current = nil

	if err, ok := c.failOn[query]; ok {
		return err
	}
	if results, ok := c.results[query]; ok {
		c.current = results
	}
	return nil
}

func (c *fakeCursor) Description() []string {
	if len(c.current) == 0 {
		return nil
	}
	return c.current[0].cols
}

func (c *fakeCursor) FetchAll() ([][]string, error) {
	if len(c.current) == 0 {
		return nil, errors.New("no result set to fetch from")
	}
	return c.current[0].rows, nil
}

func (c *fakeCursor) NextSet() (bool, error) {
	if len(c.current) <= 1 {
		c.current = nil
		return false, nil
	}
	c.current = c.current[1:]
	return true, nil
}

func (c *fakeCursor) Close() error { return nil }
