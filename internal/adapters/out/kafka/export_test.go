package kafka

func NewProducerWithWriter(w messageWriter, topic string) *Producer {
	return &Producer{writer: w, topic: topic}
}

type MessageWriter = messageWriter
