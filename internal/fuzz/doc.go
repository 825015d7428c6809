// Package fuzztests houses Go fuzz harnesses for the tokenizer and the
// entity decoder. They check that arbitrary bytes never panic, that the
// event stream does not depend on where input is split, and that the
// decoder rejects bad framing with an error.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
