package server

import (
	_ "embed"
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"google.golang.org/protobuf/reflect/protoregistry"
)

const (
	protoFile     = "compiler.proto"
	ServiceName   = "tackc.Compiler"
	CompileMethod = "/tackc.Compiler/Compile"
)

//go:embed compiler.proto
var compilerProto string

// Schema holds the parsed service definition.
type Schema struct {
	File    *desc.FileDescriptor
	Service *desc.ServiceDescriptor
	Compile *desc.MethodDescriptor

	// Files resolves the schema for server reflection.
	Files *protoregistry.Files
}

func LoadSchema() (*Schema, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{protoFile: compilerProto}),
	}
	fds, err := parser.ParseFiles(protoFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse proto: %w", err)
	}
	fd := fds[0]

	sd := fd.FindService(ServiceName)
	if sd == nil {
		return nil, fmt.Errorf("service %s not found in %s", ServiceName, protoFile)
	}
	md := sd.FindMethodByName("Compile")
	if md == nil {
		return nil, fmt.Errorf("method Compile not found in %s", ServiceName)
	}

	files := new(protoregistry.Files)
	if err := files.RegisterFile(fd.UnwrapFile()); err != nil {
		return nil, fmt.Errorf("registering %s: %w", protoFile, err)
	}
	return &Schema{File: fd, Service: sd, Compile: md, Files: files}, nil
}
