package cmd

import (
	"fmt"
	"io"
	"os"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
)

// source is one script to process
type source struct {
	name string
	text string
}

// readSources collects inline expressions and files. "-" reads stdin.
func readSources(files []string, inline []string) ([]source, error) {
	var sources []source
	for i, text := range inline {
		name := "-e"
		if len(inline) > 1 {
			name = fmt.Sprintf("-e#%d", i+1)
		}
		sources = append(sources, source{name: name, text: text})
	}

	for _, file := range files {
		var data []byte
		var err error
		if file == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(file)
		}
		if err != nil {
			return nil, cserror.Wrap(err, "failed to read script").
				WithCode(cserror.CodeNotFound).
				WithDetail("file", file)
		}
		sources = append(sources, source{name: file, text: string(data)})
	}

	if len(sources) == 0 {
		return nil, cserror.New("no script given, pass files or -e").
			WithCode(cserror.CodeInvalidInput)
	}
	return sources, nil
}
