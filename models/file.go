package models

type File struct {
	FileName    string
	ContentType string
	Body        []byte
}

func (f *File) IsEmpty() bool {
	return f == nil || len(f.Body) == 0
}
