package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
	v1reflectiongrpc "google.golang.org/grpc/reflection/grpc_reflection_v1"
	v1alphareflectiongrpc "google.golang.org/grpc/reflection/grpc_reflection_v1alpha"

	"github.com/Demonstrandum/tensorbored/internal/genprotos/registry"
)

func NewServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve <descriptor-file>",
		Short: "Serve a compiled descriptor set over gRPC reflection",
		Long: `Load a descriptor.bin produced by genprotos and expose it through the gRPC
server reflection protocol, so tools like grpcurl can browse the schemas
without the generated code. Runs until interrupted.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0], listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:6806", "Address to listen on")
	return cmd
}

func runServe(ctx context.Context, descriptorPath, listen string) error {
	files, err := registry.Load(descriptorPath)
	if err != nil {
		return err
	}
	types, err := registry.Types(files)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listen, err)
	}

	server := grpc.NewServer()
	opts := reflection.ServerOptions{
		Services:           registry.NewServiceInfo(files),
		DescriptorResolver: files,
		ExtensionResolver:  types,
	}
	v1reflectiongrpc.RegisterServerReflectionServer(server, reflection.NewServerV1(opts))
	v1alphareflectiongrpc.RegisterServerReflectionServer(server, reflection.NewServer(opts))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		server.GracefulStop()
	}()

	fmt.Printf("serving descriptor reflection for %s on %s\n", descriptorPath, lis.Addr())
	return server.Serve(lis)
}
