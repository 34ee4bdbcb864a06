package pdf

// Memory is a Document held entirely in memory. It serves callers that
// already have an object graph in hand, and it is the fixture type the
// analysis tests are built on.
type Memory struct {
	objects   Objects
	trailer   Dict
	version   Version
	encrypted bool
	info      Info
}

// NewMemory builds a Document from a trailer and an object table. The
// version defaults to 1.7 until SetVersion is called.
func NewMemory(trailer Dict, objects Objects) *Memory {
	if objects == nil {
		objects = Objects{}
	}
	return &Memory{
		objects: objects,
		trailer: trailer,
		version: Version{Major: 1, Minor: 7},
	}
}

func (m *Memory) SetVersion(v Version) { m.version = v }
func (m *Memory) SetEncrypted(on bool) { m.encrypted = on }
func (m *Memory) SetInfo(info Info)    { m.info = info }

func (m *Memory) Resolve(obj Object) Object { return m.objects.Resolve(obj) }

func (m *Memory) NumPages() int { return len(m.pages()) }

func (m *Memory) Page(number int) (Dict, bool) {
	pages := m.pages()
	if number < 1 || number > len(pages) {
		return nil, false
	}
	return pages[number-1], true
}

func (m *Memory) Trailer() Dict    { return m.trailer }
func (m *Memory) Encrypted() bool  { return m.encrypted }
func (m *Memory) Version() Version { return m.version }
func (m *Memory) Info() Info       { return m.info }

func (m *Memory) pages() []Dict { return CollectPages(m, m.trailer) }
