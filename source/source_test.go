package source

import (
	"testing"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol (t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{1, 2, 1},
			{1, 2, 1},
			{100, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{7, 4, 2},
			{8, 4, 3},
			{9, 4, 4},
			{10, 4, 5},
			{11, 4, 6},
			{12, 4, 7},
			{13, 4, 8},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
			{5, 3, 2},
		},
	}

	for text, results := range samples {
		source := New("", []byte(text))
		for _, res := range results {
			l, c := source.LineCol(res.pos)
			if l != res.line || c != res.col {
				t.Errorf("sample %q: expected %v, got line: %d, col: %d", text, res, l, c)
			}
		}
	}
}

func TestSourcePos (t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{0, 1, 2},
			{0, 2, 1},
		},
		" ": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{1, 1, 2},
			{1, 2, 1},
		},
		"\n": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{1, 1, 2},
			{1, 2, 1},
			{1, 2, 2},
			{1, 3, 1},
		},
		"hello\nworld\n": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{1, 1, 2},
			{6, 2, 1},
			{7, 2, 2},
			{12, 2, 10},
			{12, 3, 1},
			{12, 3, 2},
			{12, 4, 1},
		},
	}

	for text, results := range samples {
		source := New("", []byte(text))
		for _, res := range results {
			p := source.Pos(res.line, res.col)
			if p != res.pos {
				t.Errorf("sample %q: expected %v, got pos: %d", text, res, p)
			}
		}
	}
}

func TestPosAt (t *testing.T) {
	s := New("f.txt", []byte("ab\ncd"))
	p := PosAt(s, 4)
	if p.SourceName() != "f.txt" || p.Line() != 2 || p.Col() != 2 {
		t.Fatalf("unexpected pos: name=%s line=%d col=%d", p.SourceName(), p.Line(), p.Col())
	}

	p = PosAt(nil, 0)
	if p.Line() != 0 || p.Col() != 0 {
		t.Fatalf("expecting zero pos for nil source, got line=%d col=%d", p.Line(), p.Col())
	}
}
